package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/geezit/geezit-server/internal/utils"
)

// GenerateState creates an OAuth state of the form <random>.<base64 json metadata>
func GenerateState(data map[string]string) (string, error) {
	randomPart, err := utils.GenerateSecureToken(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	// Marshal metadata as JSON and encode
	payloadBytes, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state data: %w", err)
	}
	payloadPart := base64.RawURLEncoding.EncodeToString(payloadBytes)

	// Final format: randomPart.payloadPart
	return fmt.Sprintf("%s.%s", randomPart, payloadPart), nil
}

// DecodeState splits the state into its random nonce and decoded metadata
func DecodeState(state string) (string, map[string]string, error) {
	nonce, payload, ok := strings.Cut(state, ".")
	if !ok || nonce == "" || strings.Contains(payload, ".") {
		return "", nil, fmt.Errorf("invalid state format")
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode state payload: %w", err)
	}

	var data map[string]string
	if err := json.Unmarshal(payloadBytes, &data); err != nil {
		return "", nil, fmt.Errorf("failed to unmarshal state JSON: %w", err)
	}

	return nonce, data, nil
}

// stateNonce returns the random part of a state produced by GenerateState.
func stateNonce(state string) string {
	nonce, _, _ := strings.Cut(state, ".")
	return nonce
}
