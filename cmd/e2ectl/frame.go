package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/embedsafe/e2e-go/pkg/e2e"
	"github.com/embedsafe/e2e-go/pkg/registry"
)

// parseFrame decodes a hex frame argument. Spaces and colons are allowed
// as byte separators.
func parseFrame(arg string) ([]byte, error) {
	cleaned := strings.NewReplacer(" ", "", ":", "", "0x", "").Replace(arg)
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid hex frame %q: %w", arg, err)
	}
	return data, nil
}

// formatFrame renders a frame as space-separated hex bytes.
func formatFrame(data []byte) string {
	return fmt.Sprintf("% X", data)
}

// loadStream builds the named engine from a catalog file.
func loadStream(catalogPath, stream string) (e2e.Profile, error) {
	if catalogPath == "" {
		return nil, fmt.Errorf("required flag --catalog not set")
	}
	if stream == "" {
		return nil, fmt.Errorf("required flag --stream not set")
	}

	file, err := registry.Load(catalogPath)
	if err != nil {
		return nil, err
	}
	engines, err := file.Build()
	if err != nil {
		return nil, err
	}
	p, ok := engines[stream]
	if !ok {
		return nil, fmt.Errorf("stream %q not found in %s", stream, catalogPath)
	}
	return p, nil
}
