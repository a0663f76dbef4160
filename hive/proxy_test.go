package hive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithProxyInterceptors(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	inner := &fakeCaller{responses: map[string]string{
		"rewritten.method": `"ok"`,
	}}

	var sawMethod string
	p := WithProxy(inner,
		func(method string, params interface{}) (string, interface{}) {
			return "rewritten.method", params
		},
		func(method string, result interface{}, err error) error {
			sawMethod = method
			return err
		})

	var result string
	require.NoError(p.Call(context.Background(), "original.method",
		[]interface{}{}, &result))
	assert.Equal("ok", result)
	assert.Equal("rewritten.method", sawMethod)
	assert.Equal(1, inner.calls)
}

func TestWithProxyResponseError(t *testing.T) {
	assert := assert.New(t)

	inner := &fakeCaller{responses: map[string]string{"m": `"ok"`}}
	boom := errors.New("rejected by policy")
	p := WithProxy(inner, nil,
		func(string, interface{}, error) error { return boom })

	var result string
	err := p.Call(context.Background(), "m", nil, &result)
	assert.ErrorIs(err, boom)
}

func TestWithProxyNilInterceptors(t *testing.T) {
	inner := &fakeCaller{responses: map[string]string{"m": `"ok"`}}
	p := WithProxy(inner, nil, nil)

	var result string
	require.NoError(t, p.Call(context.Background(), "m", nil, &result))
	assert.Equal(t, "ok", result)
}

func TestExtend(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	inner := &fakeCaller{responses: map[string]string{"m": `"ok"`}}

	base := Extend(inner, map[string]interface{}{
		"region": "eu",
		"tier":   1,
	})
	child := Extend(base, map[string]interface{}{
		"tier": 2,
	})

	// Calls pass straight through to the inner Caller.
	var result string
	require.NoError(child.Call(context.Background(), "m", nil, &result))
	assert.Equal("ok", result)

	// Merged capabilities, new set wins on collisions.
	region, ok := child.Capability("region")
	assert.True(ok)
	assert.Equal("eu", region)
	tier, _ := child.Capability("tier")
	assert.Equal(2, tier)

	// The parent is untouched.
	tier, _ = base.Capability("tier")
	assert.Equal(1, tier)

	_, ok = child.Capability("missing")
	assert.False(ok)
}
