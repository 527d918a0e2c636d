package secret_test

import (
	"context"
	"errors"
	"mint-service/internal/pkg/secret"
	"testing"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
)

type fakeAccessor struct {
	name string
	data []byte
	err  error
}

func (f *fakeAccessor) AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	f.name = req.GetName()
	if f.err != nil {
		return nil, f.err
	}
	return &secretmanagerpb.AccessSecretVersionResponse{
		Payload: &secretmanagerpb.SecretPayload{Data: f.data},
	}, nil
}

func TestReadPrivateKey(t *testing.T) {
	ctx := context.Background()

	t.Run("latest version appended", func(t *testing.T) {
		f := &fakeAccessor{data: []byte("0xabc\n")}

		key, err := secret.ReadPrivateKey(ctx, f, "projects/p/secrets/demo-wallet")

		assert.NoError(t, err)
		assert.Equal(t, "0xabc", key)
		assert.Equal(t, "projects/p/secrets/demo-wallet/versions/latest", f.name)
	})

	t.Run("explicit version kept", func(t *testing.T) {
		f := &fakeAccessor{data: []byte("abc")}

		_, err := secret.ReadPrivateKey(ctx, f, "projects/p/secrets/demo-wallet/versions/3")

		assert.NoError(t, err)
		assert.Equal(t, "projects/p/secrets/demo-wallet/versions/3", f.name)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := secret.ReadPrivateKey(ctx, &fakeAccessor{data: []byte("  ")}, "projects/p/secrets/s")
		assert.Error(t, err)
	})

	t.Run("access error", func(t *testing.T) {
		_, err := secret.ReadPrivateKey(ctx, &fakeAccessor{err: errors.New("denied")}, "projects/p/secrets/s")
		assert.ErrorContains(t, err, "denied")
	})
}
