package workflow

import (
	"errors"
	"math"
	"net/netip"
	"regexp"
	"strconv"
	"strings"

	"github.com/imamik/vpcprov/internal/provisioning"
)

var positiveNumberRe = regexp.MustCompile(`^\s*\d*(\.\d+)?\s*$`)

// ValidateEntitledProcessors checks the processor entitlement of a request.
// Dedicated instances take a positive integer, shared instances a positive
// multiple of 0.25.
func ValidateEntitledProcessors(values provisioning.Options, value string) error {
	var n float64
	if positiveNumberRe.MatchString(value) {
		n, _ = strconv.ParseFloat(strings.TrimSpace(value), 64)
	}
	if n <= 0 {
		return errors.New("Entitled Processors field does not contain a well-formed positive number")
	}

	if values.GetLast(provisioning.OptInstanceType) == "dedicated" {
		if math.Mod(n, 1) != 0 {
			return errors.New(`For dedicated processors, the format is: "positive integer"`)
		}
		return nil
	}

	if math.Mod(n/0.25, 1) != 0 {
		return errors.New(`For shared processors, the format is: "positive whole multiple of 0.25"`)
	}
	return nil
}

// ValidateIPAddress checks that value is an IPv4 address.
func ValidateIPAddress(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("IP is blank")
	}

	addr, err := netip.ParseAddr(value)
	if err != nil || !addr.Is4() {
		return errors.New("IP-address field has to be either blank or a valid IPv4 address")
	}
	return nil
}
