package strato_test

import (
	"net/url"
	"testing"

	"github.com/strato-io/strato/pkg/strato"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    strato.APIVersion
		wantErr bool
	}{
		{input: "2.27", want: strato.APIVersion{Major: 2, Minor: 27}},
		{input: "v2.0", want: strato.APIVersion{Major: 2, Minor: 0}},
		{input: "2", wantErr: true},
		{input: "", wantErr: true},
		{input: "2.x", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := strato.ParseAPIVersion(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestAPIVersion_Compare(t *testing.T) {
	t.Parallel()

	v22 := strato.APIVersion{Major: 2, Minor: 2}
	v222 := strato.APIVersion{Major: 2, Minor: 22}
	v30 := strato.APIVersion{Major: 3, Minor: 0}

	assert.Equal(t, -1, v22.Compare(v222))
	assert.Equal(t, 1, v222.Compare(v22))
	assert.Equal(t, 0, v22.Compare(v22))
	assert.True(t, v222.LessThan(v30))
	assert.Equal(t, "2.22", v222.String())
}

func version(major, minor int) *strato.APIVersion {
	return &strato.APIVersion{Major: major, Minor: minor}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestServiceInfo_PickVersion(t *testing.T) {
	t.Parallel()

	full := &strato.ServiceInfo{
		MajorVersion:   strato.APIVersion{Major: 2, Minor: 0},
		CurrentVersion: version(2, 24),
		MinimumVersion: version(2, 1),
	}

	noMinimum := &strato.ServiceInfo{
		MajorVersion:   strato.APIVersion{Major: 2, Minor: 0},
		CurrentVersion: version(2, 24),
	}

	bare := &strato.ServiceInfo{
		MajorVersion: strato.APIVersion{Major: 2, Minor: 0},
	}

	t.Run("latest", func(t *testing.T) {
		t.Parallel()

		picked, ok := full.PickVersion(strato.LatestVersion())
		require.True(t, ok)
		assert.Equal(t, strato.APIVersion{Major: 2, Minor: 24}, picked)

		_, ok = bare.PickVersion(strato.LatestVersion())
		assert.False(t, ok)
	})

	t.Run("minimum", func(t *testing.T) {
		t.Parallel()

		picked, ok := full.PickVersion(strato.MinimumVersion())
		require.True(t, ok)
		assert.Equal(t, strato.APIVersion{Major: 2, Minor: 1}, picked)

		_, ok = noMinimum.PickVersion(strato.MinimumVersion())
		assert.False(t, ok)
	})

	t.Run("exact within range", func(t *testing.T) {
		t.Parallel()

		picked, ok := full.PickVersion(strato.ExactVersion(strato.APIVersion{Major: 2, Minor: 10}))
		require.True(t, ok)
		assert.Equal(t, strato.APIVersion{Major: 2, Minor: 10}, picked)

		_, ok = full.PickVersion(strato.ExactVersion(strato.APIVersion{Major: 2, Minor: 25}))
		assert.False(t, ok)

		_, ok = full.PickVersion(strato.ExactVersion(strato.APIVersion{Major: 2, Minor: 0}))
		assert.False(t, ok)
	})

	t.Run("exact without minimum only matches current", func(t *testing.T) {
		t.Parallel()

		picked, ok := noMinimum.PickVersion(strato.ExactVersion(strato.APIVersion{Major: 2, Minor: 24}))
		require.True(t, ok)
		assert.Equal(t, strato.APIVersion{Major: 2, Minor: 24}, picked)

		_, ok = noMinimum.PickVersion(strato.ExactVersion(strato.APIVersion{Major: 2, Minor: 10}))
		assert.False(t, ok)
	})

	t.Run("choice picks greatest qualifying", func(t *testing.T) {
		t.Parallel()

		picked, ok := full.PickVersion(strato.VersionChoice(
			strato.APIVersion{Major: 2, Minor: 0},
			strato.APIVersion{Major: 2, Minor: 2},
			strato.APIVersion{Major: 2, Minor: 22},
			strato.APIVersion{Major: 2, Minor: 25},
		))
		require.True(t, ok)
		assert.Equal(t, strato.APIVersion{Major: 2, Minor: 22}, picked)
	})

	t.Run("choice empty", func(t *testing.T) {
		t.Parallel()

		_, ok := full.PickVersion(strato.VersionChoice())
		assert.False(t, ok)
	})

	t.Run("choice without minimum only matches current", func(t *testing.T) {
		t.Parallel()

		picked, ok := noMinimum.PickVersion(strato.VersionChoice(
			strato.APIVersion{Major: 2, Minor: 2},
			strato.APIVersion{Major: 2, Minor: 24},
		))
		require.True(t, ok)
		assert.Equal(t, strato.APIVersion{Major: 2, Minor: 24}, picked)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestExtractServiceInfo(t *testing.T) {
	t.Parallel()

	t.Run("single version document", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"version": {
			"id": "v2.0",
			"status": "CURRENT",
			"version": "2.24",
			"min_version": "2.1",
			"links": [{"href": "http://cloud.local:9696/v2.0/", "rel": "self"}]
		}}`)

		endpoint, _ := url.Parse("http://cloud.local:9696/v2.0/")

		info, err := strato.ExtractServiceInfo(body, endpoint, 2)
		require.NoError(t, err)
		assert.Equal(t, strato.APIVersion{Major: 2, Minor: 0}, info.MajorVersion)
		require.NotNil(t, info.CurrentVersion)
		assert.Equal(t, strato.APIVersion{Major: 2, Minor: 24}, *info.CurrentVersion)
		require.NotNil(t, info.MinimumVersion)
		assert.Equal(t, strato.APIVersion{Major: 2, Minor: 1}, *info.MinimumVersion)
		assert.Equal(t, "http://cloud.local:9696/v2.0/", info.RootURL.String())
	})

	t.Run("versions collection selects major version", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"versions": [
			{"id": "v1.0", "status": "DEPRECATED", "links": [{"href": "http://cloud.local/v1/", "rel": "self"}]},
			{"id": "v2.0", "status": "CURRENT", "links": [{"href": "http://cloud.local/v2.0/", "rel": "self"}]}
		]}`)

		endpoint, _ := url.Parse("http://cloud.local/")

		info, err := strato.ExtractServiceInfo(body, endpoint, 2)
		require.NoError(t, err)
		assert.Equal(t, strato.APIVersion{Major: 2, Minor: 0}, info.MajorVersion)
		assert.Nil(t, info.CurrentVersion)
		assert.Nil(t, info.MinimumVersion)
	})

	t.Run("empty version strings mean absent", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"version": {
			"id": "v2.0",
			"status": "CURRENT",
			"version": "",
			"min_version": "",
			"links": [{"href": "http://cloud.local/v2.0/", "rel": "self"}]
		}}`)

		info, err := strato.ExtractServiceInfo(body, nil, 2)
		require.NoError(t, err)
		assert.Nil(t, info.CurrentVersion)
		assert.Nil(t, info.MinimumVersion)
	})

	t.Run("https endpoint forces https root", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"version": {
			"id": "v2.0",
			"status": "CURRENT",
			"links": [{"href": "http://cloud.local/v2.0/", "rel": "self"}]
		}}`)

		endpoint, _ := url.Parse("https://cloud.local/v2.0/")

		info, err := strato.ExtractServiceInfo(body, endpoint, 2)
		require.NoError(t, err)
		assert.Equal(t, "https", info.RootURL.Scheme)
	})

	t.Run("missing self link is fatal", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"version": {
			"id": "v2.0",
			"status": "CURRENT",
			"links": [{"href": "http://cloud.local/v2.0/doc", "rel": "describedby"}]
		}}`)

		_, err := strato.ExtractServiceInfo(body, nil, 2)
		require.ErrorIs(t, err, strato.ErrInvalidResponse)
	})

	t.Run("garbage body", func(t *testing.T) {
		t.Parallel()

		_, err := strato.ExtractServiceInfo([]byte("not json"), nil, 2)
		require.ErrorIs(t, err, strato.ErrInvalidResponse)
	})
}
