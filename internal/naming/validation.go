package naming

import (
	"fmt"
	"regexp"
	"strings"

	utilvalidation "k8s.io/apimachinery/pkg/util/validation"
)

const userNameMaxLength = 16

var userNameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// ValidateDomain checks that domain is a syntactically valid host name with at
// least two labels after normalization.
func ValidateDomain(domain string) error {
	d := Normalize(domain)
	if d == "" {
		return fmt.Errorf("domain must not be empty")
	}
	if errs := utilvalidation.IsDNS1123Subdomain(d); len(errs) > 0 {
		return fmt.Errorf("invalid domain %q: %s", domain, strings.Join(errs, ", "))
	}
	if !strings.Contains(d, ".") {
		return fmt.Errorf("invalid domain %q: at least two labels required", domain)
	}
	return nil
}

// ValidateUser checks an account handle as accepted by the account API.
func ValidateUser(user string) error {
	if user == "" {
		return fmt.Errorf("user name must not be empty")
	}
	if len(user) > userNameMaxLength {
		return fmt.Errorf("user name exceeds %d characters", userNameMaxLength)
	}
	if !userNameRegex.MatchString(user) {
		return fmt.Errorf("invalid user name %q", user)
	}
	return nil
}
