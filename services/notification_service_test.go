package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"rendezvous_server/models"
	"rendezvous_server/socket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyOfflineReceiverIsPersisted(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addParty(t, "a", "Alice")
	env.addParty(t, "b", "Bob")

	view, err := env.notifications.Notify(ctx, "a", "b", models.NotificationKindLike)
	require.NoError(t, err)
	assert.NotEmpty(t, view.NotificationID)
	assert.Equal(t, "b", view.Receiver)
	assert.False(t, view.IsRead)

	list, err := env.notifications.ListNotifications(ctx, "b", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, view.NotificationID, list[0].NotificationID)
	assert.Equal(t, models.PartyInfo{PartyID: "a", Name: "Alice"}, list[0].Sender)
	assert.Equal(t, 1, env.metrics.Count("notifications_stored"))
	assert.Zero(t, env.metrics.Count("notifications_pushed"))
}

func TestNotifyBusyChannelDoesNotFail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addParty(t, "a", "Alice")
	env.addParty(t, "b", "Bob")
	env.registry.Register("b", &recordingChannel{id: "conn-b", pushErr: socket.ErrChannelBusy})

	_, err := env.notifications.Notify(ctx, "a", "b", models.NotificationKindMatch)
	require.NoError(t, err)

	list, err := env.notifications.ListNotifications(ctx, "b", 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, env.metrics.Count("notifications_dropped"))
}

func TestNotifyPushesToLiveChannel(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addParty(t, "a", "Alice")
	env.addParty(t, "b", "Bob")
	ch := env.connect("b")

	view, err := env.notifications.Notify(ctx, "a", "b", models.NotificationKindDateScheduled)
	require.NoError(t, err)

	pushed := ch.notifications()
	require.Len(t, pushed, 1)
	assert.Equal(t, view, pushed[0])
	assert.Equal(t, 1, env.metrics.Count("notifications_pushed"))
}

type failingNotificationStore struct{ NotificationStore }

func (failingNotificationStore) PutNotification(ctx context.Context, n *models.Notification) error {
	return errors.New("throughput exceeded")
}

func TestNotifyStoreFailureSkipsPush(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addParty(t, "a", "Alice")
	env.addParty(t, "b", "Bob")
	ch := env.connect("b")
	env.notifications.Store = failingNotificationStore{env.store}

	_, err := env.notifications.Notify(ctx, "a", "b", models.NotificationKindLike)
	requireKind(t, err, KindInternal)
	assert.Empty(t, ch.notifications())
}

func TestListNotificationsNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addParty(t, "b", "Bob")
	for i := 0; i < DefaultNotificationLimit+5; i++ {
		sender := fmt.Sprintf("p%02d", i)
		env.addParty(t, sender, "Sender "+sender)
		_, err := env.notifications.Notify(ctx, sender, "b", models.NotificationKindLike)
		require.NoError(t, err)
	}

	list, err := env.notifications.ListNotifications(ctx, "b", 0)
	require.NoError(t, err)
	require.Len(t, list, DefaultNotificationLimit)
	assert.Equal(t, "p34", list[0].Sender.PartyID)
	assert.Equal(t, "Sender p34", list[0].Sender.Name)
	assert.Equal(t, "p05", list[len(list)-1].Sender.PartyID)

	short, err := env.notifications.ListNotifications(ctx, "b", 3)
	require.NoError(t, err)
	assert.Len(t, short, 3)

	empty, err := env.notifications.ListNotifications(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
