package observability

import (
	"testing"
	"time"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordManifestParse("ok")
	RecordManifestParse("error")
	RecordCPortAllocation()
	RecordCPortFree()
	SetActiveConnections("host-a", 3)
	RecordOperation("success", 4*time.Millisecond)
	RecordHTTPRequest("GET", "/health", 200, 12*time.Millisecond)
}
