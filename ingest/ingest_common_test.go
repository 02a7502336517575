package ingest_test

import (
	"fmt"
	"testing"

	"github.com/APTrust/fedora-services/models"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/util/logger"
	"github.com/APTrust/fedora-services/util/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testNamespace = "test"
const testCollection = "islandora:test"
const testParent = "test:100"

type fixture struct {
	server  *testutil.FedoraServer
	context *models.Context
	fs      afero.Fs
}

// newFixture returns a context pointed at a fresh fake Fedora, with
// the auxiliary assets written to an in-memory filesystem.
func newFixture(t *testing.T, configure ...func(*common.Config)) *fixture {
	server := testutil.NewFedoraServer()
	t.Cleanup(server.Close)

	config := common.DefaultConfig()
	config.FedoraURL = server.URL
	config.Namespace = testNamespace
	config.Collection = testCollection
	for _, fn := range configure {
		fn(config)
	}

	fs := afero.NewMemMapFs()
	require.Nil(t, testutil.WriteAssets(fs, config))
	context, err := models.NewContextWithFs(config, logger.DiscardLogger("ingest_test"), fs)
	require.Nil(t, err)
	return &fixture{
		server:  server,
		context: context,
		fs:      fs,
	}
}

// describe reduces a request to something easy to compare in
// ordering tests.
func describe(r *testutil.RecordedRequest) string {
	switch r.Op {
	case testutil.OpIngest:
		return fmt.Sprintf("ingest %s", r.Query.Get("label"))
	case testutil.OpAddRelationship:
		return fmt.Sprintf("addRelationship %s %s", r.Predicate(), r.Query.Get("object"))
	default:
		return fmt.Sprintf("%s %s", r.Op, r.DSID)
	}
}

func describeAll(requests []*testutil.RecordedRequest) []string {
	descriptions := make([]string, len(requests))
	for i, r := range requests {
		descriptions[i] = describe(r)
	}
	return descriptions
}
