package controllers

import (
	"os"
	"testing"

	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"
)

func TestMain(m *testing.M) {
	if err := config.SetupLogger(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}
