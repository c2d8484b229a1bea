package mlclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaryan-549/CivicPulse/internal/mlclient"
)

func TestValidatePlate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ocr/plate", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		assert.Equal(t, "plate.jpg", hdr.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"detected":true,"plate_number":"DL01AB1234","confidence":0.91}`))
	}))
	defer srv.Close()

	res := mlclient.New(srv.URL).ValidatePlate(context.Background(), []byte("jpeg-bytes"))
	require.NotNil(t, res)
	assert.True(t, res.Detected)
	assert.Equal(t, "DL01AB1234", res.PlateNumber)
	assert.Equal(t, 0.91, res.Confidence)
}

func TestValidatePlate_ServerErrorReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	res := mlclient.New(srv.URL).ValidatePlate(context.Background(), []byte("jpeg-bytes"))
	assert.Nil(t, res)
}

func TestValidatePlate_BadBodyReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	res := mlclient.New(srv.URL).ValidatePlate(context.Background(), []byte("jpeg-bytes"))
	assert.Nil(t, res)
}

func TestValidatePlate_UnreachableReturnsNil(t *testing.T) {
	res := mlclient.New("http://127.0.0.1:1").ValidatePlate(context.Background(), []byte("jpeg-bytes"))
	assert.Nil(t, res)
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, mlclient.New(srv.URL).Healthy(context.Background()))
	assert.False(t, mlclient.New("http://127.0.0.1:1").Healthy(context.Background()))
}
