package capabilities_test

import (
	"testing"

	"github.com/isometry/eventbridge-explorer/internal/capabilities"
	"github.com/isometry/eventbridge-explorer/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	testCases := []struct {
		Name          string
		Enabled       bool
		Bucket        string
		Disabled      bool
		ExpectExport  bool
		ExpectPublish bool
	}{
		{Name: "defaults", ExpectPublish: true},
		{Name: "export_enabled", Enabled: true, Bucket: "snapshots", ExpectExport: true, ExpectPublish: true},
		{Name: "export_without_bucket", Enabled: true, ExpectPublish: true},
		{Name: "publish_disabled", Disabled: true},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			config.Export.S3.Enabled = tc.Enabled
			config.Export.S3.BucketName = tc.Bucket
			config.Publish.Disabled = tc.Disabled
			config.Publish.Source = "qa.probe"

			capabilities.Load()

			assert.Equal(t, tc.ExpectExport, capabilities.Global.S3.Export.Enabled)
			assert.Equal(t, tc.Bucket, capabilities.Global.S3.Export.BucketName)
			assert.Equal(t, tc.ExpectPublish, capabilities.Publish.Enabled)
			assert.Equal(t, "qa.probe", capabilities.Publish.Source)
		})
	}
}
