package tile

// validTransitions is the closed, bidirectional biome-adjacency graph.
// Recovered from the production rule set (original_source's
// valid_transitions, whose own test confirms bidirectionality) since the
// distilled spec left the full edge set as an open question.
var validTransitions = map[BiomeType][]BiomeType{
	BiomeOcean:           {},
	BiomeIce:             {BiomeTundra},
	BiomeTundra:          {BiomeIce, BiomeBorealForest},
	BiomeBorealForest:    {BiomeTundra, BiomeTemperateForest},
	BiomeTemperateForest: {BiomeBorealForest, BiomeGrassland, BiomeTropicalForest},
	BiomeGrassland:       {BiomeTemperateForest, BiomeSavanna, BiomeWetland},
	BiomeSavanna:         {BiomeGrassland, BiomeDesert, BiomeTropicalForest},
	BiomeDesert:          {BiomeSavanna, BiomeBarren},
	BiomeTropicalForest:  {BiomeTemperateForest, BiomeSavanna},
	BiomeWetland:         {BiomeGrassland},
	BiomeBarren:          {BiomeDesert},
}

// CanTransition reports whether biome from may change to biome to in a
// single tick. A biome may always "transition" to itself (a no-op write).
func CanTransition(from, to BiomeType) bool {
	if from == to {
		return true
	}
	for _, candidate := range validTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// TransitionResistance returns a value in [0,1] describing how strongly a
// tile resists leaving its current biome, increasing with how long it has
// held that biome. Rules are expected to weigh this against their own
// transition_pressure computation; the engine itself only enforces
// CanTransition at apply time.
func TransitionResistance(ticksInCurrentBiome uint32) float64 {
	const halfLife = 200.0
	t := float64(ticksInCurrentBiome)
	return t / (t + halfLife)
}
