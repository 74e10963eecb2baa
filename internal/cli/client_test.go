package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableURL(t *testing.T) {
	tests := []struct {
		server string
		user   string
		want   string
	}{
		{"http://localhost:8080", "", "ws://localhost:8080/table"},
		{"http://localhost:8080/", "gm1", "ws://localhost:8080/table?user=gm1"},
		{"https://fate.example.com", "a b", "wss://fate.example.com/table?user=a+b"},
		{"ws://127.0.0.1:9000", "u1", "ws://127.0.0.1:9000/table?user=u1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := NewClient(tt.server).TableURL(tt.user)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableURL_UnsupportedScheme(t *testing.T) {
	_, err := NewClient("ftp://localhost").TableURL("")
	assert.Error(t, err)
}

func TestDefaultConfig_Env(t *testing.T) {
	t.Setenv("FATETABLE_SERVER", "http://fate:9000")
	t.Setenv("FATETABLE_USER", "gm1")

	c := DefaultConfig()

	assert.Equal(t, "http://fate:9000", c.ServerURL)
	assert.Equal(t, "gm1", c.User)
	assert.Equal(t, "text", c.Output)
}
