package cep

import "fmt"

// ValidateCoverage checks that groups partition roster: every member is a
// roster site and no code appears twice. With full set, every roster site
// must also be a member of some group.
//
// Errors: ErrUnknownSite, ErrDuplicateSite, ErrIncompleteCoverage.
//
// Complexity: O(|roster| + total members).
func ValidateCoverage(roster []*Site, groups []*Group, full bool) error {
	known := make(map[string]struct{}, len(roster))
	for _, s := range roster {
		known[s.code] = struct{}{}
	}

	seen := make(map[string]string, len(roster))
	for _, g := range groups {
		for _, s := range g.Sites {
			if _, ok := known[s.code]; !ok {
				return fmt.Errorf("%w: %s in group %q", ErrUnknownSite, s.code, g.Name)
			}
			if prev, dup := seen[s.code]; dup {
				return fmt.Errorf("%w: %s in groups %q and %q", ErrDuplicateSite, s.code, prev, g.Name)
			}
			seen[s.code] = g.Name
		}
	}

	if !full {
		return nil
	}
	for code := range known {
		if _, ok := seen[code]; !ok {
			return fmt.Errorf("%w: %s", ErrIncompleteCoverage, code)
		}
	}

	return nil
}
