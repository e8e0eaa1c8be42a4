package registry

var orgTeamIDs = []int{
	146,  // Miami Marlins
	385,  // Jacksonville Jumbo Shrimp
	467,  // Pensacola Blue Wahoos
	564,  // Beloit Sky Carp
	554,  // Jupiter Hammerheads
	619,  // FCL Marlins
	3276, // DSL Marlins
	4124, // DSL Marlins Bautista
	3277, // DSL Marlins San Pedro
	479,  // DSL Marlins
	2127, // DSL Marlins
}

// Full-season clubs used for the org-wide player index.
var mainOrgTeamIDs = []int{146, 385, 467, 564, 554}

// Upstream sport ids for MLB down through the rookie complexes.
var sportIDs = []int{1, 21, 16, 11, 13, 12, 14}

// OrgTeamIDs returns the organization's team ids in registry order.
func OrgTeamIDs() []int {
	return append([]int(nil), orgTeamIDs...)
}

// MainOrgTeamIDs returns the full-season affiliates, MLB first.
func MainOrgTeamIDs() []int {
	return append([]int(nil), mainOrgTeamIDs...)
}

// SportIDs returns every sport id requested alongside the team ids.
func SportIDs() []int {
	return append([]int(nil), sportIDs...)
}

// IsOrgTeam reports whether id belongs to the registry.
func IsOrgTeam(id int) bool {
	for _, candidate := range orgTeamIDs {
		if candidate == id {
			return true
		}
	}
	return false
}
