package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active *bool  `json:"active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Code:   r.Code,
		Name:   r.Name,
		Type:   r.Type,
		Active: r.Active,
	}
}

// UpdateAccountRequest carries a partial account update.
type UpdateAccountRequest struct {
	Name   *string `json:"name,omitempty"`
	Type   *string `json:"type,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		Name:   r.Name,
		Type:   r.Type,
		Active: r.Active,
	}
}

// EntryRequest is a journal entry as submitted by clients. Any client-sent
// id is ignored; the server assigns identifiers.
type EntryRequest struct {
	Date        string        `json:"date"`
	Description string        `json:"description"`
	Lines       []LineRequest `json:"lines"`
}

// ToDraft converts the request into a draft for validation.
func (r *EntryRequest) ToDraft() *domain.EntryDraft {
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalLine{
			AccountCode: l.AccountCode,
			Debit:       domain.ToAmount(l.Debit),
			Credit:      domain.ToAmount(l.Credit),
		}
	}

	return &domain.EntryDraft{
		Date:        r.Date,
		Description: r.Description,
		Lines:       lines,
	}
}

// LineRequest is one submitted line. The account may arrive as accountCode,
// cuentaId or cuenta.id, and amounts as debit/debe and credit/haber, either
// numbers or numeric strings.
type LineRequest struct {
	AccountCode string
	Debit       any
	Credit      any
}

// UnmarshalJSON normalizes the accepted line shapes.
func (l *LineRequest) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		return fmt.Errorf("%w: line must be an object", domain.ErrInvalidShape)
	}

	var raw map[string]json.RawMessage
	if err := decodeNumbers(data, &raw); err != nil {
		return err
	}

	code, err := firstScalar(raw, "accountCode", "cuentaId")
	if err != nil {
		return err
	}
	if code == "" {
		if nested, ok := raw["cuenta"]; ok && isObject(nested) {
			var cuenta map[string]json.RawMessage
			if err := decodeNumbers(nested, &cuenta); err != nil {
				return err
			}
			if code, err = firstScalar(cuenta, "id", "code"); err != nil {
				return err
			}
		}
	}

	*l = LineRequest{
		AccountCode: code,
		Debit:       firstAmount(raw, "debit", "debe"),
		Credit:      firstAmount(raw, "credit", "haber"),
	}
	return nil
}

// DecodeEntry parses a request body into an EntryRequest. Bodies that are
// not JSON objects, or whose lines are not objects, yield ErrInvalidShape.
func DecodeEntry(body []byte) (*EntryRequest, error) {
	if !isObject(body) {
		return nil, fmt.Errorf("%w: entry must be a JSON object", domain.ErrInvalidShape)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidShape, err)
	}

	req := &EntryRequest{}
	var err error
	if req.Date, err = firstScalar(envelope, "date", "fecha"); err != nil {
		return nil, err
	}
	if req.Description, err = firstScalar(envelope, "description", "descripcion"); err != nil {
		return nil, err
	}

	if lines, ok := envelope["lines"]; ok && !isNull(lines) {
		if !bytes.HasPrefix(bytes.TrimSpace(lines), []byte("[")) {
			return nil, fmt.Errorf("%w: lines must be an array", domain.ErrInvalidShape)
		}
		if err := json.Unmarshal(lines, &req.Lines); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func isObject(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidShape, err)
	}
	return nil
}

// firstScalar returns the first present key rendered as text. Numbers are
// accepted so that numeric account codes survive.
func firstScalar(raw map[string]json.RawMessage, keys ...string) (string, error) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || isNull(v) {
			continue
		}

		var out any
		if err := decodeNumbers(v, &out); err != nil {
			return "", err
		}

		switch x := out.(type) {
		case string:
			if s := strings.TrimSpace(x); s != "" {
				return s, nil
			}
		case json.Number:
			return x.String(), nil
		default:
			return "", fmt.Errorf("%w: field %q must be a string", domain.ErrInvalidShape, k)
		}
	}
	return "", nil
}

func firstAmount(raw map[string]json.RawMessage, keys ...string) any {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || isNull(v) {
			continue
		}

		var out any
		if err := decodeNumbers(v, &out); err != nil {
			return nil
		}
		return out
	}
	return nil
}
