package schema

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constSchema(out any) Schema {
	return Func(func(any) (any, error) { return out, nil })
}

func TestKeyNormalize(t *testing.T) {
	k := Key{OperationID: "op", Kind: KindRequest}
	assert.Equal(t, DefaultVariant, k.Normalize().Variant)
	assert.Equal(t, "op/request/default/any", k.String())
	assert.Equal(t, "op/response/default/201", ResponseKey("op", 201).String())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("response")
	require.NoError(t, err)
	assert.Equal(t, KindResponse, k)

	_, err = ParseKind("reply")
	assert.Error(t, err)
}

func TestRegistry_GetIsExact(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Entry{Key: ResponseKey("op", 200), Schema: constSchema("ok")})

	tests := []struct {
		name string
		key  Key
		want bool
	}{
		{"exact", ResponseKey("op", 200), true},
		{"empty variant normalizes", Key{OperationID: "op", Kind: KindResponse, Status: 200}, true},
		{"other status", ResponseKey("op", 201), false},
		{"any status does not match", ResponseKey("op", StatusAny), false},
		{"other kind", Key{OperationID: "op", Kind: KindRequest, Status: 200}, false},
		{"other variant", Key{OperationID: "op", Kind: KindResponse, Variant: "csv", Status: 200}, false},
		{"other operation", ResponseKey("op2", 200), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := reg.Get(tt.key)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Entry{Key: RequestKey("op"), Schema: constSchema("first")})
	reg.Register(Entry{Key: Key{OperationID: "op", Kind: KindRequest}, Schema: constSchema("second")})

	assert.Equal(t, 1, reg.Len())
	s, ok := reg.Get(RequestKey("op"))
	require.True(t, ok)
	out, err := s.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "second", out)
}

func TestRegistry_ClearAndKeys(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Entry{Key: ResponseKey("b", 200), Schema: constSchema(nil)})
	reg.Register(Entry{Key: ResponseKey("a", 404), Schema: constSchema(nil)})
	reg.Register(Entry{Key: ResponseKey("a", 200), Schema: constSchema(nil)})
	reg.Register(Entry{Key: RequestKey("a"), Schema: constSchema(nil)})

	keys := reg.Keys()
	require.Len(t, keys, 4)
	assert.Equal(t, RequestKey("a"), keys[0])
	assert.Equal(t, ResponseKey("a", 200), keys[1])
	assert.Equal(t, ResponseKey("a", 404), keys[2])
	assert.Equal(t, ResponseKey("b", 200), keys[3])

	reg.Clear()
	assert.Equal(t, 0, reg.Len())
	_, ok := reg.Get(RequestKey("a"))
	assert.False(t, ok)
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Entry{Key: RequestKey("op"), Schema: constSchema(1)})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_, ok := reg.Get(RequestKey("op"))
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}

func TestFunc(t *testing.T) {
	boom := errors.New("boom")
	var s Schema = Func(func(v any) (any, error) {
		if v == nil {
			return nil, boom
		}
		return v, nil
	})
	_, err := s.Parse(nil)
	assert.ErrorIs(t, err, boom)
}
