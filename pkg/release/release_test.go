package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForSeries(t *testing.T) {
	testCases := []struct {
		series        string
		expected      string
		expectedError bool
	}{
		{
			series:   "focal",
			expected: "ussuri",
		},
		{
			series:   "jammy",
			expected: "yoga",
		},
		{
			series:        "warty",
			expectedError: true,
		},
	}

	for _, testCase := range testCases {
		codename, err := ForSeries(testCase.series)

		if testCase.expectedError {
			assert.NotNil(t, err)
		} else {
			assert.Nil(t, err)
			assert.Equal(t, testCase.expected, codename)
		}
	}
}

func TestIndexOrdering(t *testing.T) {
	trusty, err := Index("trusty_icehouse")
	assert.Nil(t, err)
	assert.Equal(t, 0, trusty)

	jammy, err := Index("jammy_zed")
	assert.Nil(t, err)
	assert.Equal(t, len(Pairs())-1, jammy)

	_, err = Index("jammy_vanilla")
	assert.NotNil(t, err)
	assert.Equal(t, "unknown release pair \"jammy_vanilla\"", err.Error())
}

func TestCompare(t *testing.T) {
	testCases := []struct {
		pairA         string
		pairB         string
		expected      int
		expectedError bool
	}{
		{
			pairA:    "bionic_queens",
			pairB:    "focal_ussuri",
			expected: -1,
		},
		{
			pairA:    "jammy_yoga",
			pairB:    "focal_ussuri",
			expected: 1,
		},
		{
			pairA:    "focal_ussuri",
			pairB:    "focal_ussuri",
			expected: 0,
		},
		{
			pairA:         "focal_ussuri",
			pairB:         "bogus_pair",
			expectedError: true,
		},
	}

	for _, testCase := range testCases {
		result, err := Compare(testCase.pairA, testCase.pairB)

		if testCase.expectedError {
			assert.NotNil(t, err)
		} else {
			assert.Nil(t, err)
			assert.Equal(t, testCase.expected, result)
		}
	}
}

func TestAtLeast(t *testing.T) {
	testCases := []struct {
		pair     string
		floor    string
		expected bool
	}{
		{
			pair:     "jammy_yoga",
			floor:    "focal_ussuri",
			expected: true,
		},
		{
			pair:     "focal_ussuri",
			floor:    "focal_ussuri",
			expected: true,
		},
		{
			pair:     "bionic_stein",
			floor:    "focal_ussuri",
			expected: false,
		},
	}

	for _, testCase := range testCases {
		result, err := AtLeast(testCase.pair, testCase.floor)

		assert.Nil(t, err)
		assert.Equal(t, testCase.expected, result)
	}
}

func TestCompareCodenames(t *testing.T) {
	testCases := []struct {
		codenameA     string
		codenameB     string
		expected      int
		expectedError bool
	}{
		{
			codenameA: "mitaka",
			codenameB: "newton",
			expected:  -1,
		},
		{
			codenameA: "zed",
			codenameB: "yoga",
			expected:  1,
		},
		{
			codenameA: "Ussuri",
			codenameB: "ussuri",
			expected:  0,
		},
		{
			codenameA:     "unobtanium",
			codenameB:     "yoga",
			expectedError: true,
		},
	}

	for _, testCase := range testCases {
		result, err := CompareCodenames(testCase.codenameA, testCase.codenameB)

		if testCase.expectedError {
			assert.NotNil(t, err)
		} else {
			assert.Nil(t, err)
			assert.Equal(t, testCase.expected, result)
		}
	}
}

func TestDefaultNeutronExtensions(t *testing.T) {
	testCases := []struct {
		pair     string
		expected string
	}{
		{
			pair:     "",
			expected: NeutronExtensions,
		},
		{
			pair:     "focal_ussuri",
			expected: NeutronExtensions,
		},
		{
			pair:     "jammy_yoga",
			expected: NeutronExtensions,
		},
		{
			pair:     "bionic_queens",
			expected: "all",
		},
		{
			pair:     "not_a_pair",
			expected: "all",
		},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, DefaultNeutronExtensions(testCase.pair))
	}
}

func TestSeriesReleasesOrdering(t *testing.T) {
	releases := SeriesReleases()

	assert.Equal(t, "oneiric", releases[0].Series)
	assert.Equal(t, "jammy", releases[len(releases)-1].Series)

	for idx := 1; idx < len(releases); idx++ {
		older, err := CodenameVersion(releases[idx-1].Codename)
		assert.Nil(t, err)

		newer, err := CodenameVersion(releases[idx].Codename)
		assert.Nil(t, err)

		assert.True(t, older.LessThan(newer), "%s should predate %s",
			releases[idx-1].Codename, releases[idx].Codename)
	}
}
