package release

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
)

// SeriesRelease ties an Ubuntu series to the OpenStack release it ships.
type SeriesRelease struct {
	Series   string
	Codename string
}

// seriesReleases is ordered oldest first.
var seriesReleases = []SeriesRelease{
	{"oneiric", "diablo"},
	{"precise", "essex"},
	{"quantal", "folsom"},
	{"raring", "grizzly"},
	{"saucy", "havana"},
	{"trusty", "icehouse"},
	{"utopic", "juno"},
	{"vivid", "kilo"},
	{"wily", "liberty"},
	{"xenial", "mitaka"},
	{"yakkety", "newton"},
	{"zesty", "ocata"},
	{"artful", "pike"},
	{"bionic", "queens"},
	{"cosmic", "rocky"},
	{"disco", "stein"},
	{"eoan", "train"},
	{"focal", "ussuri"},
	{"groovy", "victoria"},
	{"hirsute", "wallaby"},
	{"impish", "xena"},
	{"jammy", "yoga"},
}

// codenameVersions maps OpenStack codenames to the upstream version scheme
// understood by go-version, oldest first.
var codenameVersions = map[string]string{
	"diablo":   "2011.2",
	"essex":    "2012.1",
	"folsom":   "2012.2",
	"grizzly":  "2013.1",
	"havana":   "2013.2",
	"icehouse": "2014.1",
	"juno":     "2014.2",
	"kilo":     "2015.1",
	"liberty":  "2015.2",
	"mitaka":   "2016.1",
	"newton":   "2016.2",
	"ocata":    "2017.1",
	"pike":     "2017.2",
	"queens":   "2018.1",
	"rocky":    "2018.2",
	"stein":    "2019.1",
	"train":    "2019.2",
	"ussuri":   "2020.1",
	"victoria": "2020.2",
	"wallaby":  "2021.1",
	"xena":     "2021.2",
	"yoga":     "2022.1",
	"zed":      "2022.2",
}

// releasePairs lists the series_codename combinations charm gate jobs run
// against, oldest first.
var releasePairs = []string{
	"trusty_icehouse", "trusty_kilo", "trusty_liberty",
	"trusty_mitaka", "xenial_mitaka", "xenial_newton",
	"yakkety_newton", "xenial_ocata", "zesty_ocata",
	"xenial_pike", "artful_pike", "xenial_queens",
	"bionic_queens", "bionic_rocky", "cosmic_rocky",
	"bionic_stein", "disco_stein", "bionic_train",
	"eoan_train", "bionic_ussuri", "focal_ussuri",
	"focal_victoria", "groovy_victoria",
	"focal_wallaby", "hirsute_wallaby",
	"focal_xena", "impish_xena",
	"focal_yoga", "jammy_yoga", "jammy_zed",
}

// NeutronExtensions is the neutron API extension list advertised by charm
// deployments from focal/ussuri onward.
const NeutronExtensions = "address-scope,agent,allowed-address-pairs," +
	"auto-allocated-topology,availability_zone," +
	"binding,default-subnetpools,external-net," +
	"extra_dhcp_opt,multi-provider,net-mtu," +
	"network_availability_zone,network-ip-availability," +
	"port-security,provider,quotas,rbac-address-scope," +
	"rbac-policies,standard-attr-revisions,security-group," +
	"standard-attr-description,subnet_allocation," +
	"standard-attr-tag,standard-attr-timestamp,trunk," +
	"quota_details,router,extraroute,ext-gw-mode," +
	"fip-port-details,pagination,sorting,project-id," +
	"dns-integration,qos"

// SeriesReleases returns the known Ubuntu series and their OpenStack
// releases, oldest first.
func SeriesReleases() []SeriesRelease {
	result := make([]SeriesRelease, len(seriesReleases))
	copy(result, seriesReleases)

	return result
}

// Pairs returns the known series_codename release pairs, oldest first.
func Pairs() []string {
	result := make([]string, len(releasePairs))
	copy(result, releasePairs)

	return result
}

// ForSeries returns the OpenStack codename shipped by the given Ubuntu
// series.
func ForSeries(series string) (string, error) {
	for _, seriesRelease := range seriesReleases {
		if seriesRelease.Series == series {
			return seriesRelease.Codename, nil
		}
	}

	return "", fmt.Errorf("unknown ubuntu series %q", series)
}

// Index returns the position of the given release pair in the known pair
// list.
func Index(pair string) (int, error) {
	for idx, knownPair := range releasePairs {
		if knownPair == pair {
			return idx, nil
		}
	}

	return 0, fmt.Errorf("unknown release pair %q", pair)
}

// Compare compares two release pairs by their position in the known pair
// list. It returns -1 when pairA is older than pairB, 0 when equal and 1
// when newer.
func Compare(pairA, pairB string) (int, error) {
	idxA, err := Index(pairA)
	if err != nil {
		return 0, err
	}

	idxB, err := Index(pairB)
	if err != nil {
		return 0, err
	}

	switch {
	case idxA < idxB:
		return -1, nil
	case idxA > idxB:
		return 1, nil
	default:
		return 0, nil
	}
}

// AtLeast tells whether the given release pair is the floor pair or newer.
func AtLeast(pair, floor string) (bool, error) {
	result, err := Compare(pair, floor)
	if err != nil {
		return false, err
	}

	return result >= 0, nil
}

// CodenameVersion returns the upstream version of the given OpenStack
// codename.
func CodenameVersion(codename string) (*version.Version, error) {
	rawVersion, known := codenameVersions[strings.ToLower(codename)]
	if !known {
		return nil, fmt.Errorf("unknown openstack codename %q", codename)
	}

	return version.NewVersion(rawVersion)
}

// CompareCodenames compares two OpenStack codenames by their upstream
// versions. It returns -1 when codenameA is older than codenameB, 0 when
// equal and 1 when newer.
func CompareCodenames(codenameA, codenameB string) (int, error) {
	versionA, err := CodenameVersion(codenameA)
	if err != nil {
		return 0, err
	}

	versionB, err := CodenameVersion(codenameB)
	if err != nil {
		return 0, err
	}

	return versionA.Compare(versionB), nil
}

// DefaultNeutronExtensions returns the neutron API extension list expected
// for the given release pair. Deployments older than focal/ussuri advertise
// too few extensions to pin, so tempest is left to probe them all. An empty
// pair selects the full modern list.
func DefaultNeutronExtensions(pair string) string {
	if pair == "" {
		return NeutronExtensions
	}

	modern, err := AtLeast(pair, "focal_ussuri")
	if err != nil || !modern {
		return "all"
	}

	return NeutronExtensions
}
