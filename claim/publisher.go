package claim

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher pushes recomputed claim sets to MQTT so website instances pick up
// map changes without polling. Messages are retained so a late subscriber
// immediately receives the latest claim set.
type Publisher struct {
	client        mqtt.Client
	publishPrefix string
	qos           byte
	retain        bool
	lastClaims    []ClaimShape
	mu            sync.RWMutex
}

// NewPublisher creates a claim publisher.
// If client is nil, publishing is disabled (for testing).
func NewPublisher(client mqtt.Client) *Publisher {
	prefix := os.Getenv("MQTT_PUBLISH_PREFIX")
	if prefix == "" {
		prefix = "guildmap"
	}

	return &Publisher{
		client:        client,
		publishPrefix: prefix,
		qos:           0,
		retain:        true,
	}
}

// SetPrefix overrides the publish topic prefix.
func (p *Publisher) SetPrefix(prefix string) {
	if prefix != "" {
		p.publishPrefix = prefix
	}
}

// PublishClaims publishes the claim set as JSON to {prefix}/claims and as a
// GeoJSON FeatureCollection to {prefix}/claims/geojson.
func (p *Publisher) PublishClaims(claims []ClaimShape) error {
	if p.client == nil || !p.client.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	p.mu.Lock()
	p.lastClaims = claims
	p.mu.Unlock()

	if err := p.publishClaimList(claims); err != nil {
		log.Printf("Error publishing claim list: %v", err)
		return err
	}
	if err := p.publishGeoJSON(claims); err != nil {
		log.Printf("Error publishing claim GeoJSON: %v", err)
		return err
	}
	return nil
}

func (p *Publisher) publishClaimList(claims []ClaimShape) error {
	topic := fmt.Sprintf("%s/claims", p.publishPrefix)

	message := map[string]interface{}{
		"claims":    claims,
		"timestamp": time.Now().Unix(),
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshaling claims: %w", err)
	}

	token := p.client.Publish(topic, p.qos, p.retain, payload)
	if token.WaitTimeout(2*time.Second) && token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}

	log.Printf("Published %d claims to %s", len(claims), topic)
	return nil
}

func (p *Publisher) publishGeoJSON(claims []ClaimShape) error {
	topic := fmt.Sprintf("%s/claims/geojson", p.publishPrefix)

	payload, err := ClaimsGeoJSON(claims)
	if err != nil {
		return err
	}

	token := p.client.Publish(topic, p.qos, p.retain, payload)
	if token.WaitTimeout(2*time.Second) && token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}
	return nil
}

// LastClaims returns the most recently published claim set.
func (p *Publisher) LastClaims() []ClaimShape {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastClaims
}

// SetQoS sets the Quality of Service level for publishing (0, 1, or 2).
func (p *Publisher) SetQoS(qos byte) {
	if qos <= 2 {
		p.qos = qos
	}
}

// SetRetain sets whether published messages should be retained by the broker.
func (p *Publisher) SetRetain(retain bool) {
	p.retain = retain
}
