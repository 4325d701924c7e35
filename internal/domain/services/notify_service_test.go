package services

import (
	"errors"
	"testing"

	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

func TestPublish_WithoutConnection(t *testing.T) {
	svc := NewNotifyService(&config.Config{})

	err := svc.PublishAttendanceMarked(&AttendanceMarkedMessage{EmployeeID: 1})
	if !errors.Is(err, mqtt.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}

	err = svc.PublishSystemMessage("maintenance", map[string]interface{}{"reason": "test"})
	if !errors.Is(err, mqtt.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}
