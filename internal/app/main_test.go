package service_test

import (
	"os"
	"testing"

	"github.com/javy001/trainingplanner/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
