package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `uid,name,details
7992,"Vladimir PUTIN","Type: individual | Program: UKRAINE-EO13661 | Aliases: a.k.a. 'PUTIN, Vladimir Vladimirovich' | DOB 07 Oct 1952; nationality Russia"
9001,"ACME Trading LLC","Type: entity | Program: IRAN | Address: Tehran, Iran"
9002,"Jane DOE",""
,missing uid,
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sdn.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	records, version, err := LoadCSV(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	assert.NotEmpty(t, version)
	require.Len(t, records, 3)

	putin := records[0]
	assert.Equal(t, "7992", putin.ID)
	assert.Equal(t, "Vladimir PUTIN", putin.PrimaryName)
	assert.Equal(t, "individual", putin.Type)
	assert.Equal(t, "UKRAINE-EO13661", putin.Program)
	assert.Equal(t, []string{"PUTIN, Vladimir Vladimirovich"}, putin.Aliases)
	assert.Equal(t, Date{Year: 1952, Month: 10, Day: 7}, putin.DateOfBirth)
	assert.Equal(t, []string{"Russia"}, putin.Nationalities)

	acme := records[1]
	assert.Equal(t, "entity", acme.Type)
	assert.Equal(t, []string{"Tehran, Iran"}, acme.Addresses)
	assert.True(t, acme.DateOfBirth.IsZero())

	jane := records[2]
	assert.Equal(t, "individual", jane.Type)
	assert.Empty(t, jane.Aliases)
}

func TestLoadCSVVersionIsContentAddressed(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	_, v1, err := LoadCSV(path)
	require.NoError(t, err)
	_, v2, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)

	_, v3, err := LoadCSV(writeCSV(t, sampleCSV+"\n9003,Extra ROW,\n"))
	require.NoError(t, err)
	assert.NotEqual(t, v1, v3)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, _, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
