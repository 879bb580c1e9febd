package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	itemServices "items-admin-backend/items/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T, handler http.HandlerFunc) *CatalogService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewCatalogService(CatalogOptions{BaseURL: server.URL + "/", APIToken: "secret"})
	require.NoError(t, err)
	return svc
}

func TestCreateItem_PostsPayload(t *testing.T) {
	var got map[string]interface{}
	svc := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"itm_1"}}`))
	})

	id, err := svc.CreateItem(context.Background(), itemServices.CreateItemPayload{
		ProductName: "Tee",
		Status:      itemServices.ItemStatusDraft,
		Sizes:       []itemServices.SizePayload{{Size: "S", Quantity: 2, RegularPrice: 499}},
	})

	require.NoError(t, err)
	assert.Equal(t, "itm_1", id)
	assert.Equal(t, "Tee", got["productName"])
	assert.Equal(t, "draft", got["status"])
}

func TestCreateItem_ReadsAlternativeIDShapes(t *testing.T) {
	for body, want := range map[string]string{
		`{"id":"a1"}`:           "a1",
		`{"_id":"b2"}`:          "b2",
		`{"data":{"_id":"c3"}}`: "c3",
		`{"success":true}`:      "",
	} {
		body := body
		svc := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})

		id, err := svc.CreateItem(context.Background(), itemServices.CreateItemPayload{ProductName: "Tee"})
		require.NoError(t, err, body)
		assert.Equal(t, want, id, body)
	}
}

func TestCreateItem_ErrorCarriesRemoteMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"message":"SKU already exists"}`, "SKU already exists"},
		{"error", `{"error":"slug taken"}`, "slug taken"},
		{"plain", `bad gateway upstream`, "bad gateway upstream"},
		{"empty", ``, "Conflict"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := svc.CreateItem(context.Background(), itemServices.CreateItemPayload{ProductName: "Tee"})

			var catalogErr *CatalogError
			require.ErrorAs(t, err, &catalogErr)
			assert.Equal(t, http.StatusConflict, catalogErr.StatusCode)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestNewCatalogService_RequiresURL(t *testing.T) {
	_, err := NewCatalogService(CatalogOptions{})
	assert.Error(t, err)
}
