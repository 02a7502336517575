package ingest_test

import (
	"errors"
	"testing"

	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/ingest"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/util/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPidFromLine(t *testing.T) {
	valid := map[string]string{
		"objects/test:6":     "test:6",
		"  objects/test:7\r": "test:7",
		"a/wallace:12/extra": "wallace:12",
		"/islandora:root":    "islandora:root",
		"objects/ test:8 ":   "test:8",
	}
	for line, expected := range valid {
		pid, err := ingest.PidFromLine(line)
		require.Nil(t, err, line)
		assert.Equal(t, expected, pid, line)
	}

	for _, line := range []string{"test:6", "objects/", "", "   "} {
		_, err := ingest.PidFromLine(line)
		require.NotNil(t, err, line)
		assert.True(t, errors.Is(err, common.ErrInvalidPidLine))
		assert.Equal(t, common.KindInvalidArgument, common.KindOf(err))
	}
}

func TestReadPidList(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.Nil(t, testutil.WriteFile(memFs, "to_restrict.txt", []byte("objects/test:6\n\nobjects/test:7\n")))
	pids, err := ingest.ReadPidList(memFs, "to_restrict.txt")
	require.Nil(t, err)
	assert.Equal(t, []string{"test:6", "test:7"}, pids)

	require.Nil(t, testutil.WriteFile(memFs, "bad.txt", []byte("objects/test:6\ntest:7\n")))
	_, err = ingest.ReadPidList(memFs, "bad.txt")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidPidLine))
	assert.Contains(t, err.Error(), "line 2")

	_, err = ingest.ReadPidList(memFs, "missing.txt")
	assert.NotNil(t, err)
}

func TestApplyPolicy(t *testing.T) {
	f := newFixture(t)
	policyPath := f.context.Config.RestrictionPolicyPath
	require.Nil(t, ingest.ApplyPolicy(f.context.FedoraClient, "test:6", policyPath))

	requests := f.server.Requests()
	require.Equal(t, 1, len(requests))
	assert.Equal(t, testutil.OpAddDatastream, requests[0].Op)
	assert.Equal(t, "test:6", requests[0].PID)
	assert.Equal(t, constants.DatastreamPolicy, requests[0].DSID)
	assert.Equal(t, "NAGPRA_POLICY.xml", requests[0].FileName)
	assert.Equal(t, testutil.PolicyXML, string(requests[0].Content))
}
