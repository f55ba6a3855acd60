package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerate(t *testing.T) {
	var got ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "  Good answer!  \n", Done: true})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "deepseek-r1:1.5b", time.Second)
	out, err := c.Generate(context.Background(), "evaluate this")
	require.NoError(t, err)

	assert.Equal(t, "Good answer!", out, "response should be trimmed")
	assert.Equal(t, "deepseek-r1:1.5b", got.Model)
	assert.Equal(t, "evaluate this", got.Prompt)
	assert.False(t, got.Stream)
	assert.InDelta(t, 0.7, got.Options["temperature"], 0.001)
}

func TestOllamaGenerateBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "nope", time.Second)
	_, err := c.Generate(context.Background(), "x")
	assert.Error(t, err)
}

func TestOllamaModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"llama3:latest"},{"name":"deepseek-r1:1.5b"}]}`))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "deepseek-r1:1.5b", time.Second)
	models, err := c.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3:latest", "deepseek-r1:1.5b"}, models)
}
