// Package transfer encodes one user's full state as a printable code for
// moving it between devices by copy and paste.
package transfer

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/example/sakura/pkg/models"
	"github.com/pkg/errors"
)

// FormatVersion is written into every payload.
const FormatVersion = 1

// ErrInvalidFormat is returned for codes that cannot be decoded or lack required sections.
var ErrInvalidFormat = errors.New("invalid transfer code: please ensure you copied the entire string")

// Payload is the bundle carried by a transfer code
type Payload struct {
	Version     int                            `json:"version"`
	User        *models.UserAccount            `json:"user"`
	Reviews     map[string]models.ReviewRecord `json:"srs"` // keyed by models.ReviewKey
	Results     []models.TestResult            `json:"results"`
	CustomItems []models.StudyItem             `json:"customItems"`
	Timestamp   int64                          `json:"timestamp"` // Unix milliseconds
}

// Encode serializes p as base64 of its JSON form.
func Encode(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", errors.Wrap(err, "encode transfer payload")
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode parses a code produced by Encode. Whitespace introduced by copying
// the code is ignored.
func Decode(code string) (*Payload, error) {
	code = strings.Join(strings.Fields(code), "")
	if code == "" {
		return nil, errors.Wrap(ErrInvalidFormat, "empty code")
	}

	data, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "decode base64: %v", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "decode json: %v", err)
	}
	if p.User == nil || p.User.ID == "" {
		return nil, errors.Wrap(ErrInvalidFormat, "missing user section")
	}
	if p.Reviews == nil {
		return nil, errors.Wrap(ErrInvalidFormat, "missing srs section")
	}
	return &p, nil
}
