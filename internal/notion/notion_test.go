package notion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangobot/mangobot/internal/domain"
)

func testClient(serverURL string) *Client {
	return &Client{
		token:      "secret-token",
		databaseID: "db-123",
		baseURL:    serverURL,
		httpClient: &http.Client{},
	}
}

func TestCreateRecord(t *testing.T) {
	var gotPath, gotAuth, gotVersion string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")

		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)

		w.Write([]byte(`{"object":"page"}`))
	}))
	defer server.Close()

	entry := domain.Entry{
		Name:    "A Study",
		Link:    "https://arxiv.org/abs/1234",
		Type:    domain.TypeResearch,
		Subject: "🧠 Mental Health",
		Tags:    []string{"Cognition", "Bias", "Study", "Neuroscience", "Research"},
	}

	err := testClient(server.URL).CreateRecord(context.Background(), entry)
	require.NoError(t, err)
	require.NotNil(t, gotBody)

	assert.Equal(t, "/pages", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, APIVersion, gotVersion)

	parent := gotBody["parent"].(map[string]interface{})
	assert.Equal(t, "db-123", parent["database_id"])

	properties := gotBody["properties"].(map[string]interface{})

	link := properties["Link"].(map[string]interface{})
	assert.Equal(t, entry.Link, link["url"])

	name := properties["Name"].(map[string]interface{})
	title := name["title"].([]interface{})
	require.Len(t, title, 1)
	text := title[0].(map[string]interface{})["text"].(map[string]interface{})
	assert.Equal(t, entry.Name, text["content"])

	subject := properties["Subject"].(map[string]interface{})["select"].(map[string]interface{})
	assert.Equal(t, entry.Subject, subject["name"])

	resourceType := properties["Type"].(map[string]interface{})["select"].(map[string]interface{})
	assert.Equal(t, "Research", resourceType["name"])

	tags := properties["Tags"].(map[string]interface{})["multi_select"].([]interface{})
	require.Len(t, tags, 5)
	assert.Equal(t, "Cognition", tags[0].(map[string]interface{})["name"])

	added := properties["Added on"].(map[string]interface{})["date"].(map[string]interface{})
	start, err := time.Parse(time.RFC3339, added["start"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), start, time.Minute)
}

func TestCreateRecordDegradedEntry(t *testing.T) {
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.Write([]byte(`{"object":"page"}`))
	}))
	defer server.Close()

	entry := domain.Entry{
		Name: "Blocked",
		Link: "https://example.com",
		Type: domain.TypeBlocked,
		Tags: []string{},
	}

	err := testClient(server.URL).CreateRecord(context.Background(), entry)
	require.NoError(t, err)
	require.NotNil(t, gotBody)

	properties := gotBody["properties"].(map[string]interface{})
	assert.NotContains(t, properties, "Subject", "empty subject must be omitted")

	tags := properties["Tags"].(map[string]interface{})["multi_select"].([]interface{})
	assert.Empty(t, tags)
}

func TestCreateRecordAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"object":"error","message":"validation_error"}`))
	}))
	defer server.Close()

	err := testClient(server.URL).CreateRecord(context.Background(), domain.Entry{Link: "https://example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
