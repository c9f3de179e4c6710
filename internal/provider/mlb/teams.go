package mlb

// TeamNames maps MLB team IDs to their short display names.
var TeamNames = map[int]string{
	109: "ARI D-backs",
	144: "ATL Braves",
	110: "BAL Orioles",
	111: "BOS Red Sox",
	112: "CHC Cubs",
	113: "CIN Reds",
	114: "CLE Guardians",
	115: "COL Rockies",
	116: "DET Tigers",
	117: "HOU Astros",
	118: "KC Royals",
	108: "LAA Angels",
	119: "LAD Dodgers",
	146: "MIA Marlins",
	158: "MIL Brewers",
	142: "MIN Twins",
	121: "NYM Mets",
	147: "NYY Yankees",
	133: "OAK Athletics",
	143: "PHI Phillies",
	134: "PIT Pirates",
	135: "SD Padres",
	136: "SEA Mariners",
	137: "SF Giants",
	138: "STL Cardinals",
	139: "TB Rays",
	140: "TEX Rangers",
	141: "TOR Blue Jays",
	145: "CWS White Sox",
	120: "WSH Nationals",
}

// TeamName returns the display name for a team ID, or fallback when unknown.
func TeamName(id int, fallback string) string {
	if name, ok := TeamNames[id]; ok {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return TBD
}
