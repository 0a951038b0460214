package memory

import "github.com/pickemhq/pickem-pool/internal/domain/team"

// SeedTeams returns the canonical NFL team catalog the resolver is built
// from. Alt names cover the labels the score feeds actually send: city-only,
// nickname-only, and a few historical spellings.
func SeedTeams() []team.Team {
	return []team.Team{
		{Key: "ari", Name: "Arizona Cardinals", Abbreviation: "ARI", AltNames: []string{"Arizona", "Cardinals"}},
		{Key: "atl", Name: "Atlanta Falcons", Abbreviation: "ATL", AltNames: []string{"Atlanta", "Falcons"}},
		{Key: "bal", Name: "Baltimore Ravens", Abbreviation: "BAL", AltNames: []string{"Baltimore", "Ravens"}},
		{Key: "buf", Name: "Buffalo Bills", Abbreviation: "BUF", AltNames: []string{"Buffalo", "Bills"}},
		{Key: "car", Name: "Carolina Panthers", Abbreviation: "CAR", AltNames: []string{"Carolina", "Panthers"}},
		{Key: "chi", Name: "Chicago Bears", Abbreviation: "CHI", AltNames: []string{"Chicago", "Bears"}},
		{Key: "cin", Name: "Cincinnati Bengals", Abbreviation: "CIN", AltNames: []string{"Cincinnati", "Bengals"}},
		{Key: "cle", Name: "Cleveland Browns", Abbreviation: "CLE", AltNames: []string{"Cleveland", "Browns"}},
		{Key: "dal", Name: "Dallas Cowboys", Abbreviation: "DAL", AltNames: []string{"Dallas", "Cowboys"}},
		{Key: "den", Name: "Denver Broncos", Abbreviation: "DEN", AltNames: []string{"Denver", "Broncos"}},
		{Key: "det", Name: "Detroit Lions", Abbreviation: "DET", AltNames: []string{"Detroit", "Lions"}},
		{Key: "gb", Name: "Green Bay Packers", Abbreviation: "GB", AltNames: []string{"Green Bay", "Packers", "G.B."}},
		{Key: "hou", Name: "Houston Texans", Abbreviation: "HOU", AltNames: []string{"Houston", "Texans"}},
		{Key: "ind", Name: "Indianapolis Colts", Abbreviation: "IND", AltNames: []string{"Indianapolis", "Colts"}},
		{Key: "jax", Name: "Jacksonville Jaguars", Abbreviation: "JAX", AltNames: []string{"Jacksonville", "Jaguars", "JAC"}},
		{Key: "kc", Name: "Kansas City Chiefs", Abbreviation: "KC", AltNames: []string{"Kansas City", "Chiefs", "K.C."}},
		{Key: "lac", Name: "Los Angeles Chargers", Abbreviation: "LAC", AltNames: []string{"LA Chargers", "Chargers", "San Diego Chargers"}},
		{Key: "lar", Name: "Los Angeles Rams", Abbreviation: "LAR", AltNames: []string{"LA Rams", "Rams", "St. Louis Rams"}},
		{Key: "lv", Name: "Las Vegas Raiders", Abbreviation: "LV", AltNames: []string{"Las Vegas", "Raiders", "Oakland Raiders"}},
		{Key: "mia", Name: "Miami Dolphins", Abbreviation: "MIA", AltNames: []string{"Miami", "Dolphins"}},
		{Key: "min", Name: "Minnesota Vikings", Abbreviation: "MIN", AltNames: []string{"Minnesota", "Vikings"}},
		{Key: "ne", Name: "New England Patriots", Abbreviation: "NE", AltNames: []string{"New England", "Patriots", "N.E."}},
		{Key: "no", Name: "New Orleans Saints", Abbreviation: "NO", AltNames: []string{"New Orleans", "Saints", "N.O."}},
		{Key: "nyg", Name: "New York Giants", Abbreviation: "NYG", AltNames: []string{"NY Giants", "Giants"}},
		{Key: "nyj", Name: "New York Jets", Abbreviation: "NYJ", AltNames: []string{"NY Jets", "Jets"}},
		{Key: "phi", Name: "Philadelphia Eagles", Abbreviation: "PHI", AltNames: []string{"Philadelphia", "Eagles"}},
		{Key: "pit", Name: "Pittsburgh Steelers", Abbreviation: "PIT", AltNames: []string{"Pittsburgh", "Steelers"}},
		{Key: "sea", Name: "Seattle Seahawks", Abbreviation: "SEA", AltNames: []string{"Seattle", "Seahawks"}},
		{Key: "sf", Name: "San Francisco 49ers", Abbreviation: "SF", AltNames: []string{"San Francisco", "49ers", "Niners"}},
		{Key: "tb", Name: "Tampa Bay Buccaneers", Abbreviation: "TB", AltNames: []string{"Tampa Bay", "Buccaneers", "Bucs"}},
		{Key: "ten", Name: "Tennessee Titans", Abbreviation: "TEN", AltNames: []string{"Tennessee", "Titans"}},
		{Key: "was", Name: "Washington Commanders", Abbreviation: "WAS", AltNames: []string{"Washington", "Commanders", "Washington Football Team"}},
	}
}
