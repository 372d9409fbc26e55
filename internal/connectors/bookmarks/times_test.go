package bookmarks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromWebKit(t *testing.T) {
	got := FromWebKit("13300000000000000")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2022, 6, 18, 4, 26, 40, 0, time.UTC), *got)

	epoch := FromWebKit("11644473600000001")
	require.NotNil(t, epoch)
	assert.Equal(t, int64(1), epoch.UnixMicro())

	for _, bad := range []string{"", "abc", "0", "-5", "11644473600000000", "1000", "99999999999999999999"} {
		assert.Nil(t, FromWebKit(bad), bad)
	}
}

func TestFromPRTime(t *testing.T) {
	got := FromPRTime(1690000000000000)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, 7, 22, 4, 26, 40, 0, time.UTC), *got)

	assert.Nil(t, FromPRTime(0))
	assert.Nil(t, FromPRTime(-1))
}

func TestFromUnixSeconds(t *testing.T) {
	got := FromUnixSeconds("1700000000")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), *got)

	assert.Nil(t, FromUnixSeconds(""))
	assert.Nil(t, FromUnixSeconds("soon"))
	assert.Nil(t, FromUnixSeconds("0"))
}
