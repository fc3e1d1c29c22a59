package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/tests/testutil"
)

func setup(t *testing.T) (context.Context, *testutil.App) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)

	app := testutil.NewApp(t, testDB, testutil.NewRedisClient(t))
	app.Reset(ctx)

	return ctx, app
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
}

// chart is a small catalog using the default prefix table.
var chart = []domain.Account{
	{Code: "1101", Name: "Caja", Type: domain.AccountTypeAsset},
	{Code: "1201", Name: "Equipo", Type: domain.AccountTypeAsset},
	{Code: "2102", Name: "Proveedores", Type: domain.AccountTypeLiability},
	{Code: "3101", Name: "Capital social", Type: domain.AccountTypeEquity},
	{Code: "4101", Name: "Gastos generales", Type: domain.AccountTypeExpense},
	{Code: "5101", Name: "Ventas", Type: domain.AccountTypeIncome},
	{Code: "6101", Name: "Costo de ventas", Type: domain.AccountTypeCost},
}

func entryBody(date, description string, lines ...map[string]any) map[string]any {
	return map[string]any{"date": date, "description": description, "lines": lines}
}

func debit(code string, amount any) map[string]any {
	return map[string]any{"accountCode": code, "debit": amount}
}

func credit(code string, amount any) map[string]any {
	return map[string]any{"accountCode": code, "credit": amount}
}
