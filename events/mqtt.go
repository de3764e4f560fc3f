package events

import (
	"errors"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const mqttPublishTimeout = 5 * time.Second

// MQTTSink publishes events to a MQTT topic
type MQTTSink struct {
	client mqtt.Client
	topic  string
}

func NewMQTTSink(broker, topic string) (*MQTTSink, error) {
	clientID := "attendance-" + uuid.New().String()
	log.Println("Connecting to MQTT", broker, "with client ID:", clientID)
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(5 * time.Second)
	opts.SetConnectTimeout(30 * time.Second)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	log.Println("Connected to MQTT")
	return &MQTTSink{client: client, topic: topic}, nil
}

func (s *MQTTSink) Send(data []byte) error {
	token := s.client.Publish(s.topic, 0, false, data)
	if !token.WaitTimeout(mqttPublishTimeout) {
		return errors.New("mqtt publish timeout")
	}
	return token.Error()
}

func (s *MQTTSink) Close() {
	s.client.Disconnect(250)
}
