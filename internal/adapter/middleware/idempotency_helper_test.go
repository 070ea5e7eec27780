package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func Test_bodyHash(t *testing.T) {
	data := []byte("hello world")
	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), bodyHash(data))
}

func Test_buildKey(t *testing.T) {
	k := buildKey("POST", "/applications", "Ann@X.io", strings.Repeat("a", 32))
	assert.True(t, strings.HasPrefix(k, "idemp:loanlink:post:/applications:ann@x.io:"), k)

	assert.NotEqual(t, k, buildKey("POST", "/applications", "bob@x.io", strings.Repeat("a", 32)), "actors")
	assert.NotEqual(t,
		buildKey("PATCH", "/applications/"+strings.Repeat("1", 32)+"/approve", "ann@x.io", strings.Repeat("a", 32)),
		buildKey("PATCH", "/applications/"+strings.Repeat("2", 32)+"/approve", "ann@x.io", strings.Repeat("a", 32)),
		"records")
}

func Test_validIdemKey(t *testing.T) {
	for _, s := range []string{
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		"3F9A6A1B-3D54-4FBE-8B3A-6B3E8D6B2C88",
		strings.Repeat("a", 32),
	} {
		assert.True(t, validIdemKey(s), s)
	}
	for _, s := range []string{
		"",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
		"{3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88}",
		"urn:uuid:3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
	} {
		assert.False(t, validIdemKey(s), s)
	}
}

func Test_parseRequestAt(t *testing.T) {
	sec := time.Now().UTC().Unix()
	ts, err := parseRequestAt(strconv.FormatInt(sec, 10))
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Unix(sec, 0).UTC()), "epoch seconds")

	ms := time.Now().UTC().UnixMilli()
	ts, err = parseRequestAt(strconv.FormatInt(ms, 10))
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.UnixMilli(ms).UTC()), "epoch millis")

	// 10:00 +07:00 == 03:00 UTC
	ts, err = parseRequestAt("2025-09-05T10:00:00+07:00")
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2025, 9, 5, 3, 0, 0, 0, time.UTC)), ts.String())

	for _, raw := range []string{"", "not-a-time", "2025-09-05T10:00:00", "1736123456abc"} {
		_, err := parseRequestAt(raw)
		assert.Error(t, err, raw)
	}
}

func Test_provisionalSet_LoadEntry(t *testing.T) {
	_, rdb := newMiniRedis(t)
	ctx := context.Background()
	key := buildKey("POST", "/loans", "ann@x.io", strings.Repeat("a", 32))
	entry := idempEntry{InProgress: true, BodySHA256: bodyHash([]byte(`{"a":1}`)), Key: strings.Repeat("a", 32), CreatedAt: nowUTC()}

	ok, err := provisionalSet(ctx, rdb, key, entry)
	require.NoError(t, err)
	require.True(t, ok)
	ttl := rdb.TTL(ctx, key).Val()
	assert.True(t, ttl > 0 && ttl <= provisionalLockTTL, "provisional ttl %v", ttl)

	ok, err = provisionalSet(ctx, rdb, key, entry)
	require.NoError(t, err)
	assert.False(t, ok, "second SETNX must lose")

	got, err := loadEntry(ctx, rdb, key)
	require.NoError(t, err)
	assert.True(t, got.InProgress)
	assert.Equal(t, entry.Key, got.Key)
	assert.Equal(t, entry.BodySHA256, got.BodySHA256)
}

func Test_saveFinal_TTL(t *testing.T) {
	_, rdb := newMiniRedis(t)
	ctx := context.Background()
	key := buildKey("POST", "/loans", "ann@x.io", strings.Repeat("a", 32))
	final := idempEntry{Code: 201, Body: []byte(`{"ok":true}`), ContentType: "application/json", CreatedAt: nowUTC()}

	require.NoError(t, saveFinal(ctx, rdb, key, final, 5*time.Second))
	ttl := rdb.TTL(ctx, key).Val()
	assert.True(t, ttl > 0 && ttl <= 5*time.Second, "final ttl %v", ttl)

	got, err := loadEntry(ctx, rdb, key)
	require.NoError(t, err)
	assert.Equal(t, 201, got.Code)
	assert.Equal(t, `{"ok":true}`, string(got.Body))
	assert.False(t, got.InProgress)
}
