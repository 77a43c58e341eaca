package wordlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_LFTerminated(t *testing.T) {
	var got []string
	err := Scan(strings.NewReader("alpha\nbeta\ngamma\n"), func(line []byte) bool {
		got = append(got, string(line))
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, got)
}

func TestScan_CRLFTerminated(t *testing.T) {
	var got []string
	err := Scan(strings.NewReader("alpha\r\nbeta\r\n"), func(line []byte) bool {
		got = append(got, string(line))
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, got)
}

func TestScan_PreservesInternalWhitespace(t *testing.T) {
	var got []string
	err := Scan(strings.NewReader("correct horse battery staple\n"), func(line []byte) bool {
		got = append(got, string(line))
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"correct horse battery staple"}, got)
}

func TestScan_NoTrailingTerminatorOnLastLine(t *testing.T) {
	var got []string
	err := Scan(strings.NewReader("alpha\nbeta"), func(line []byte) bool {
		got = append(got, string(line))
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, got)
}

func TestScan_StopsEarly(t *testing.T) {
	var got []string
	err := Scan(strings.NewReader("alpha\nbeta\ngamma\n"), func(line []byte) bool {
		got = append(got, string(line))
		return len(got) < 2
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, got)
}

func TestCount(t *testing.T) {
	n, err := Count(strings.NewReader("a\nb\nc\nd\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
