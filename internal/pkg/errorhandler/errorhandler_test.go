package errorhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/pkg/response"
)

func TestStoreFailureHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx := i18n.WithLocale(context.Background(), i18n.DE)
	StoreFailure(ctx, rec, i18n.Static{}, "credit.apply", errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "pq:") {
		t.Fatalf("store error leaked to client: %s", rec.Body.String())
	}

	var body response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == nil || body.Error.Message != "Ein Fehler ist aufgetreten" {
		t.Fatalf("unexpected body %+v", body)
	}
}
