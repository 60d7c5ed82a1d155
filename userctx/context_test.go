package userctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetUserID(ctx))

	ctx = SetUserID(ctx, "169")
	assert.Equal(t, "169", GetUserID(ctx))
}

func TestDisplayName(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "anonymous", GetDisplayName(ctx))
	assert.Equal(t, "anonymous", GetDisplayName(SetDisplayName(ctx, "")))
	assert.Equal(t, "Jo Smith", GetDisplayName(SetDisplayName(ctx, "Jo Smith")))
}
