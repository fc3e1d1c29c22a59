package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/conta/internal/adapter/http/dto"
	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/usecase"
)

type accountServiceStub struct {
	createFn    func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn       func(ctx context.Context, code string) (*domain.Account, error)
	listFn      func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	updateFn    func(ctx context.Context, code string, input usecase.UpdateAccountInput) (*domain.Account, error)
	setActiveFn func(ctx context.Context, code string, active bool) (*domain.Account, error)
	deleteFn    func(ctx context.Context, code string) error
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	return s.getFn(ctx, code)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func (s *accountServiceStub) UpdateAccount(ctx context.Context, code string, input usecase.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, code, input)
}

func (s *accountServiceStub) DeactivateAccount(ctx context.Context, code string) (*domain.Account, error) {
	return s.setActiveFn(ctx, code, false)
}

func (s *accountServiceStub) ReactivateAccount(ctx context.Context, code string) (*domain.Account, error) {
	return s.setActiveFn(ctx, code, true)
}

func (s *accountServiceStub) DeleteAccount(ctx context.Context, code string) error {
	return s.deleteFn(ctx, code)
}

func TestAccountHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			captured = input
			return &domain.Account{Code: input.Code, Name: input.Name, Type: domain.AccountTypeAsset, Active: true}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateAccountRequest{Code: "1105", Name: "Caja", Type: "activo"})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Code != "1105" || captured.Name != "Caja" || captured.Type != "activo" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "1105" || resp.Type != string(domain.AccountTypeAsset) || !resp.Active {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_Duplicate(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, domain.ErrAccountExists
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(`{"code":"1105","name":"Caja","type":"asset"}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, code string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/accounts/9999", nil), "code", "9999")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_MissingCode(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/accounts/", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_List_Filters(t *testing.T) {
	var captured usecase.ListAccountsInput
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			captured = input
			return []*domain.Account{
				{Code: "1105", Name: "Caja", Type: domain.AccountTypeAsset, Active: true},
				{Code: "1110", Name: "Bancos", Type: domain.AccountTypeAsset, Active: true},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts?type=asset&active=true&q=ca", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Type != "asset" || captured.Query != "ca" || captured.Active == nil || !*captured.Active {
		t.Fatalf("unexpected filter %+v", captured)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %+v", resp)
	}
}

func TestAccountHandler_List_BadActive(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/accounts?active=maybe", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Update(t *testing.T) {
	var gotCode string
	var gotInput usecase.UpdateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		updateFn: func(ctx context.Context, code string, input usecase.UpdateAccountInput) (*domain.Account, error) {
			gotCode, gotInput = code, input
			return &domain.Account{Code: code, Name: *input.Name, Type: domain.AccountTypeAsset}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/accounts/1105", bytes.NewBufferString(`{"name":"Caja general"}`))
	req = setChiURLParam(req, "code", "1105")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotCode != "1105" || gotInput.Name == nil || *gotInput.Name != "Caja general" || gotInput.Type != nil {
		t.Fatalf("unexpected update %s %+v", gotCode, gotInput)
	}
}

func TestAccountHandler_DeactivateReactivate(t *testing.T) {
	var calls []bool
	handler := NewAccountHandler(&accountServiceStub{
		setActiveFn: func(ctx context.Context, code string, active bool) (*domain.Account, error) {
			calls = append(calls, active)
			return &domain.Account{Code: code, Active: active}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Deactivate(rec, setChiURLParam(httptest.NewRequest(http.MethodPost, "/accounts/1105/deactivate", nil), "code", "1105"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Reactivate(rec, setChiURLParam(httptest.NewRequest(http.MethodPost, "/accounts/1105/reactivate", nil), "code", "1105"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if len(calls) != 2 || calls[0] || !calls[1] {
		t.Fatalf("unexpected calls %v", calls)
	}
}

func TestAccountHandler_Delete(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"has movements", domain.ErrAccountHasMovements, http.StatusConflict},
		{"not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"storage failure", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAccountHandler(&accountServiceStub{
				deleteFn: func(ctx context.Context, code string) error { return tt.err },
			})

			rec := httptest.NewRecorder()
			handler.Delete(rec, setChiURLParam(httptest.NewRequest(http.MethodDelete, "/accounts/1105", nil), "code", "1105"))

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
