package room

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCreateRoom(t *testing.T) {
	m := NewManager(zerolog.Nop(), nil)
	defer m.Close()

	code := m.CreateRoom()
	require.Len(t, code, 6)
	for _, ch := range code {
		assert.True(t, strings.ContainsRune(codeChars, ch), "unexpected char %q in %q", ch, code)
	}

	rooms := m.ListRooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, RoomInfo{Code: code, Clients: 0}, rooms[0])
}

func TestManagerGetOrCreateRoom(t *testing.T) {
	m := NewManager(zerolog.Nop(), nil)
	defer m.Close()

	assert.Nil(t, m.GetOrCreateRoom(""))

	a := m.GetOrCreateRoom("PITCH1")
	b := m.GetOrCreateRoom("PITCH1")
	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Equal(t, "PITCH1", a.Code)
	assert.Len(t, m.ListRooms(), 1)
}

func TestManagerRemovesEmptyRoom(t *testing.T) {
	m := NewManager(zerolog.Nop(), nil)
	defer m.Close()

	r := m.GetOrCreateRoom("GONE22")
	res, err := r.Join(newFakeConn(256), "solo")
	require.NoError(t, err)
	require.Equal(t, 1, m.ListRooms()[0].Clients)

	require.NoError(t, r.Send(Leave{PlayerID: res.PlayerID}))

	assert.Eventually(t, func() bool {
		return len(m.ListRooms()) == 0
	}, time.Second, 10*time.Millisecond)

	_, err = r.Join(newFakeConn(1), "late")
	assert.ErrorIs(t, err, ErrRoomClosed)
}

func TestManagerCloseStopsRooms(t *testing.T) {
	m := NewManager(zerolog.Nop(), nil)
	r := m.GetOrCreateRoom("CLOSE1")
	m.CreateRoom()

	m.Close()

	assert.Empty(t, m.ListRooms())
	assert.ErrorIs(t, r.Send(Leave{}), ErrRoomClosed)
}
