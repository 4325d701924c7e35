package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/domain/models"
	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTT topics for real-time attendance notifications
const (
	// TopicAttendanceMarked carries every successfully persisted mark
	TopicAttendanceMarked = "geoasistencia/attendance/marked"

	// TopicSystemMessage carries operational broadcasts
	TopicSystemMessage = "geoasistencia/system"
)

// AttendanceMarkedMessage is the payload published after each mark
type AttendanceMarkedMessage struct {
	EmployeeID     uint                    `json:"employee_id"`
	EmployeeName   string                  `json:"employee_name"`
	AreaID         uint                    `json:"area_id"`
	Action         models.AttendanceAction `json:"action"`
	Status         models.AttendanceStatus `json:"status"`
	MinutesLate    int                     `json:"minutes_late"`
	DistanceMeters float64                 `json:"distance_meters"`
	Timestamp      int64                   `json:"timestamp"`
}

// InterfaceNotifyService defines the attendance notification publisher interface
type InterfaceNotifyService interface {
	Connect() error
	Disconnect()
	PublishAttendanceMarked(msg *AttendanceMarkedMessage) error
	PublishSystemMessage(messageType string, payload map[string]interface{}) error
}

// NotifyService publishes attendance events to the MQTT broker so
// dashboards can react without polling. Publishing is best effort: a
// disconnected broker never blocks attendance recording.
type NotifyService struct {
	Config         *config.Config
	Client         mqtt.Client
	isConnected    bool
	connectedMutex sync.RWMutex
	publishMutex   sync.Mutex
}

// NewNotifyService creates a new notification service
func NewNotifyService(cfg *config.Config) InterfaceNotifyService {
	return &NotifyService{Config: cfg}
}

// 1 Connect establishes the broker connection
func (s *NotifyService) Connect() error {
	opts := mqtt.NewClientOptions().
		AddBroker(s.Config.MQTTBrokerURL).
		SetClientID(s.Config.MQTTClientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(_ mqtt.Client) {
			s.setConnected(true)
			config.Info("Connected to MQTT broker at %s", s.Config.MQTTBrokerURL)
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			s.setConnected(false)
			config.Warning("MQTT connection lost: %v", err)
		})

	s.Client = mqtt.NewClient(opts)
	token := s.Client.Connect()
	if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
		s.setConnected(false)
		if token.Error() != nil {
			return token.Error()
		}
		return mqtt.ErrNotConnected
	}

	s.setConnected(true)
	return nil
}

// 2 Disconnect closes the broker connection
func (s *NotifyService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
	s.setConnected(false)
}

// 3 PublishAttendanceMarked publishes a mark event
func (s *NotifyService) PublishAttendanceMarked(msg *AttendanceMarkedMessage) error {
	return s.publish(TopicAttendanceMarked, msg)
}

// 4 PublishSystemMessage publishes an operational broadcast
func (s *NotifyService) PublishSystemMessage(messageType string, payload map[string]interface{}) error {
	return s.publish(TopicSystemMessage, map[string]interface{}{
		"type":      messageType,
		"timestamp": time.Now().UnixMilli(),
		"payload":   payload,
	})
}

func (s *NotifyService) publish(topic string, payload interface{}) error {
	if !s.connected() {
		return mqtt.ErrNotConnected
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	s.publishMutex.Lock()
	defer s.publishMutex.Unlock()

	token := s.Client.Publish(topic, 1, false, body)
	if !token.WaitTimeout(2 * time.Second) {
		return mqtt.ErrNotConnected
	}
	return token.Error()
}

func (s *NotifyService) connected() bool {
	s.connectedMutex.RLock()
	defer s.connectedMutex.RUnlock()
	return s.isConnected
}

func (s *NotifyService) setConnected(v bool) {
	s.connectedMutex.Lock()
	defer s.connectedMutex.Unlock()
	s.isConnected = v
}
