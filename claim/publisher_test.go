package claim

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishClaims(t *testing.T) {
	mock := NewMockClient()
	mock.SetConnected(true)

	pub := NewPublisher(mock)
	pub.SetPrefix("testmap")

	claims := renderableClaims()
	require.NoError(t, pub.PublishClaims(claims))

	messages := mock.GetPublishedMessages()
	require.Len(t, messages, 2)

	assert.Equal(t, "testmap/claims", messages[0].Topic)
	assert.Equal(t, "testmap/claims/geojson", messages[1].Topic)
	for _, m := range messages {
		assert.True(t, m.Retain, "claim messages should be retained for late subscribers")
		assert.Equal(t, byte(0), m.QoS)
	}

	var claimDoc struct {
		Claims    []ClaimShape `json:"claims"`
		Timestamp int64        `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(messages[0].Payload, &claimDoc))
	assert.Len(t, claimDoc.Claims, len(claims))
	assert.NotZero(t, claimDoc.Timestamp)

	var geoDoc map[string]interface{}
	require.NoError(t, json.Unmarshal(messages[1].Payload, &geoDoc))
	assert.Equal(t, "FeatureCollection", geoDoc["type"])

	assert.Equal(t, claims, pub.LastClaims())
}

func TestPublishClaimsNotConnected(t *testing.T) {
	mock := NewMockClient()
	mock.SetConnected(false)

	pub := NewPublisher(mock)
	err := pub.PublishClaims(renderableClaims())
	assert.Error(t, err)
	assert.Empty(t, mock.GetPublishedMessages())
}

func TestPublishClaimsNilClient(t *testing.T) {
	pub := NewPublisher(nil)
	assert.Error(t, pub.PublishClaims(nil))
}

func TestPublishClaimsPublishError(t *testing.T) {
	mock := NewMockClient()
	mock.SetConnected(true)
	mock.SetPublishError(errors.New("broker rejected"))

	pub := NewPublisher(mock)
	assert.Error(t, pub.PublishClaims(renderableClaims()))
}

func TestPublisherQoSAndRetain(t *testing.T) {
	mock := NewMockClient()
	mock.SetConnected(true)

	pub := NewPublisher(mock)
	pub.SetPrefix("testmap")
	pub.SetQoS(1)
	pub.SetRetain(false)
	pub.SetQoS(7) // out of range, ignored

	require.NoError(t, pub.PublishClaims(renderableClaims()))
	for _, m := range mock.GetPublishedMessages() {
		assert.Equal(t, byte(1), m.QoS)
		assert.False(t, m.Retain)
	}
}

func TestPublisherEmptyPrefixIgnored(t *testing.T) {
	pub := NewPublisher(nil)
	before := pub.publishPrefix
	pub.SetPrefix("")
	assert.Equal(t, before, pub.publishPrefix)
}
