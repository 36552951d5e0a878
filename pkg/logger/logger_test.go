package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func TestInfo_WritesToOut(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriter(&out, &errOut)

	logger.Info("draft %s submitted", "spring-picks")

	assert.Contains(t, out.String(), "[INFO] ")
	assert.Contains(t, out.String(), "draft spring-picks submitted")
	assert.Empty(t, errOut.String())
}

func TestWarnAndError_WriteToErrOut(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriter(&out, &errOut)

	logger.Warn("queue unavailable: %s", "dial tcp")
	logger.Error("approve failed: %v", assert.AnError)

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "[WARN] queue unavailable: dial tcp")
	assert.Contains(t, errOut.String(), "[ERROR] approve failed: "+assert.AnError.Error())
	assert.Regexp(t, `^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}\.\d{6} \[WARN\] `, errOut.String())
}

func TestLogger_Formatting(t *testing.T) {
	var out bytes.Buffer
	logger := NewWithWriter(&out, &out)

	logger.Printf("collection %s has %d products", "spring-picks", 3)

	assert.Contains(t, out.String(), "collection spring-picks has 3 products")
}
