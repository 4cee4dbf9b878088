// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// EUI is a 64-bit extended unique identifier as used by LoRaWAN for
// applications, gateways and devices.
//
// The Congress API formats EUIs as eight hyphen separated hex octets,
// e.g. "00-09-09-00-00-00-00-01".
type EUI [8]byte

// ParseEUI parses an EUI from 16 hex digits, optionally separated by
// '-' or ':' between octets. Case is ignored.
func ParseEUI(s string) (EUI, error) {
	var eui EUI
	digits := strings.NewReplacer("-", "", ":", "").Replace(strings.TrimSpace(s))
	if len(digits) != 2*len(eui) {
		return eui, fmt.Errorf("invalid EUI %q: expected %d hex digits", s, 2*len(eui))
	}
	if _, err := hex.Decode(eui[:], []byte(digits)); err != nil {
		return eui, fmt.Errorf("invalid EUI %q: %w", s, err)
	}
	return eui, nil
}

// String formats the EUI the way the Congress API does
func (e EUI) String() string {
	var builder strings.Builder
	builder.Grow(3*len(e) - 1)
	for i, b := range e {
		if i > 0 {
			builder.WriteByte('-')
		}
		builder.WriteString(hex.EncodeToString([]byte{b}))
	}
	return builder.String()
}

// NewRandomEUI returns a random EUI with the locally administered bit set
func NewRandomEUI() (EUI, error) {
	var eui EUI
	if _, err := rand.Read(eui[:]); err != nil {
		return eui, fmt.Errorf("generate EUI: %w", err)
	}
	eui[0] = (eui[0] | 0x02) &^ 0x01
	return eui, nil
}

// IsValidEUI reports whether s parses as an EUI
func IsValidEUI(s string) bool {
	_, err := ParseEUI(s)
	return err == nil
}
