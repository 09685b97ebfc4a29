package environment_test

import (
	"context"
	"testing"

	"github.com/praxislegal/trustkit/pkg/environment"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		value string
		want  environment.Environment
	}{
		{value: "production", want: environment.Production},
		{value: "prod", want: environment.Production},
		{value: "staging", want: environment.Staging},
		{value: "stage", want: environment.Staging},
		{value: "development", want: environment.Development},
		{value: "", want: environment.Development},
		{value: "anything-else", want: environment.Development},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("APP_ENV="+tt.value, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.value)
			assert.Equal(t, tt.want, environment.Detect())
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := environment.WithContext(context.Background(), environment.Production)
	assert.Equal(t, environment.Production, environment.FromContext(ctx))

	assert.Empty(t, environment.FromContext(context.Background()))
	assert.Empty(t, environment.FromContext(nil)) //nolint:staticcheck // nil-safety is part of the contract
}
