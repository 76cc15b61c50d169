package terms

// defaultEntries is the static correction table, loaded once by Load and
// never mutated. Exact entries map recurring transcription misspellings
// to their canonical forms; multi-word entries are listed alongside the
// single words they contain and win by the longest-pattern-first rule.
// Phonetic entries list canonical terms for the fuzzy matcher.
//
// Single-word entries keep the canonical form lowercase so that the
// capitalization of the matched span carries over; multi-word proper
// names keep their canonical capitalization.
var defaultEntries = []Entry{
	// Philosopher names.
	{Pattern: "socratez", Replacement: "sócrates", Kind: Exact},
	{Pattern: "socrates", Replacement: "sócrates", Kind: Exact},
	{Pattern: "platão de atenas", Replacement: "Platão", Kind: Exact},
	{Pattern: "aristoteles", Replacement: "aristóteles", Kind: Exact},
	{Pattern: "eraclito", Replacement: "heráclito", Kind: Exact},
	{Pattern: "parmenidez", Replacement: "parmênides", Kind: Exact},
	{Pattern: "thomas de aquino", Replacement: "Tomás de Aquino", Kind: Exact},
	{Pattern: "tomas de aquino", Replacement: "Tomás de Aquino", Kind: Exact},
	{Pattern: "duns escoto", Replacement: "Duns Scotus", Kind: Exact},
	{Pattern: "guilherme de occam", Replacement: "Guilherme de Ockham", Kind: Exact},
	{Pattern: "pedro lombardó", Replacement: "Pedro Lombardo", Kind: Exact},
	{Pattern: "augustinho", Replacement: "agostinho", Kind: Exact},
	{Pattern: "boecio", Replacement: "boécio", Kind: Exact},
	{Pattern: "ancelmo", Replacement: "anselmo", Kind: Exact},
	{Pattern: "avicena de persia", Replacement: "Avicena", Kind: Exact},
	{Pattern: "olavo de carvalio", Replacement: "Olavo de Carvalho", Kind: Exact},
	{Pattern: "mario ferreira dos santoz", Replacement: "Mário Ferreira dos Santos", Kind: Exact},

	// Portuguese philosophical terms.
	{Pattern: "colássica", Replacement: "escolástica", Kind: Exact},
	{Pattern: "escholástica", Replacement: "escolástica", Kind: Exact},
	{Pattern: "escolastica", Replacement: "escolástica", Kind: Exact},
	{Pattern: "metafizica", Replacement: "metafísica", Kind: Exact},
	{Pattern: "metafisica", Replacement: "metafísica", Kind: Exact},
	{Pattern: "meta física", Replacement: "metafísica", Kind: Exact},
	{Pattern: "ontolojia", Replacement: "ontologia", Kind: Exact},
	{Pattern: "hontologia", Replacement: "ontologia", Kind: Exact},
	{Pattern: "antologia do ser", Replacement: "ontologia do ser", Kind: Exact},
	{Pattern: "epistimologia", Replacement: "epistemologia", Kind: Exact},
	{Pattern: "epístemologia", Replacement: "epistemologia", Kind: Exact},
	{Pattern: "filizofia", Replacement: "filosofia", Kind: Exact},
	{Pattern: "filozofia", Replacement: "filosofia", Kind: Exact},
	{Pattern: "teodicéia", Replacement: "teodiceia", Kind: Exact},
	{Pattern: "cilogismo", Replacement: "silogismo", Kind: Exact},
	{Pattern: "silogísmo", Replacement: "silogismo", Kind: Exact},
	{Pattern: "sustância", Replacement: "substância", Kind: Exact},
	{Pattern: "substancia", Replacement: "substância", Kind: Exact},
	{Pattern: "assidente", Replacement: "acidente", Kind: Exact},
	{Pattern: "escência", Replacement: "essência", Kind: Exact},
	{Pattern: "essencia", Replacement: "essência", Kind: Exact},
	{Pattern: "ezistência", Replacement: "existência", Kind: Exact},
	{Pattern: "existencia", Replacement: "existência", Kind: Exact},
	{Pattern: "potênsia", Replacement: "potência", Kind: Exact},
	{Pattern: "potencia", Replacement: "potência", Kind: Exact},
	{Pattern: "ermenêutica", Replacement: "hermenêutica", Kind: Exact},
	{Pattern: "hermeneutica", Replacement: "hermenêutica", Kind: Exact},
	{Pattern: "dialetica", Replacement: "dialética", Kind: Exact},
	{Pattern: "dialéctica", Replacement: "dialética", Kind: Exact},
	{Pattern: "conciência", Replacement: "consciência", Kind: Exact},
	{Pattern: "consciencia", Replacement: "consciência", Kind: Exact},
	{Pattern: "trancendência", Replacement: "transcendência", Kind: Exact},
	{Pattern: "transcendencia", Replacement: "transcendência", Kind: Exact},
	{Pattern: "himanência", Replacement: "imanência", Kind: Exact},
	{Pattern: "fenomenológia", Replacement: "fenomenologia", Kind: Exact},
	{Pattern: "neo tomismo", Replacement: "neotomismo", Kind: Exact},

	// Logic terms.
	{Pattern: "premisa", Replacement: "premissa", Kind: Exact},
	{Pattern: "concluzão", Replacement: "conclusão", Kind: Exact},
	{Pattern: "conclusao", Replacement: "conclusão", Kind: Exact},
	{Pattern: "enferência", Replacement: "inferência", Kind: Exact},
	{Pattern: "inferencia", Replacement: "inferência", Kind: Exact},
	{Pattern: "dedusão", Replacement: "dedução", Kind: Exact},
	{Pattern: "indusão", Replacement: "indução", Kind: Exact},
	{Pattern: "falasia", Replacement: "falácia", Kind: Exact},
	{Pattern: "falacia", Replacement: "falácia", Kind: Exact},
	{Pattern: "proposisão", Replacement: "proposição", Kind: Exact},
	{Pattern: "juizo", Replacement: "juízo", Kind: Exact},
	{Pattern: "conseito", Replacement: "conceito", Kind: Exact},
	{Pattern: "cathegoria", Replacement: "categoria", Kind: Exact},

	// Latin expressions.
	{Pattern: "apriori", Replacement: "a priori", Kind: Exact},
	{Pattern: "a priore", Replacement: "a priori", Kind: Exact},
	{Pattern: "aposteriori", Replacement: "a posteriori", Kind: Exact},
	{Pattern: "a posteriore", Replacement: "a posteriori", Kind: Exact},
	{Pattern: "ad hominen", Replacement: "ad hominem", Kind: Exact},
	{Pattern: "ad ominem", Replacement: "ad hominem", Kind: Exact},
	{Pattern: "cogito ergosum", Replacement: "cogito ergo sum", Kind: Exact},
	{Pattern: "cauza sui", Replacement: "causa sui", Kind: Exact},
	{Pattern: "quiditas", Replacement: "quidditas", Kind: Exact},
	{Pattern: "hecceitas", Replacement: "haecceitas", Kind: Exact},
	{Pattern: "factusr", Replacement: "actus", Kind: Exact},
	{Pattern: "actuz", Replacement: "actus", Kind: Exact},
	{Pattern: "actus purús", Replacement: "actus purus", Kind: Exact},
	{Pattern: "materia príma", Replacement: "materia prima", Kind: Exact},
	{Pattern: "perse", Replacement: "per se", Kind: Exact},
	{Pattern: "per sé", Replacement: "per se", Kind: Exact},
	{Pattern: "per acidens", Replacement: "per accidens", Kind: Exact},
	{Pattern: "ex níhilo", Replacement: "ex nihilo", Kind: Exact},
	{Pattern: "sine quanon", Replacement: "sine qua non", Kind: Exact},
	{Pattern: "sine qua nom", Replacement: "sine qua non", Kind: Exact},
	{Pattern: "ipso fato", Replacement: "ipso facto", Kind: Exact},
	{Pattern: "ipsofacto", Replacement: "ipso facto", Kind: Exact},
	{Pattern: "modus ponems", Replacement: "modus ponens", Kind: Exact},
	{Pattern: "modus tolens", Replacement: "modus tollens", Kind: Exact},

	// Greek terms (transliterated).
	{Pattern: "lógos", Replacement: "logos", Kind: Exact},
	{Pattern: "ptechne", Replacement: "techne", Kind: Exact},
	{Pattern: "téchne", Replacement: "techne", Kind: Exact},
	{Pattern: "fisis", Replacement: "physis", Kind: Exact},
	{Pattern: "usía", Replacement: "ousia", Kind: Exact},
	{Pattern: "eídos", Replacement: "eidos", Kind: Exact},
	{Pattern: "enteléquia", Replacement: "entelechia", Kind: Exact},
	{Pattern: "epistéme", Replacement: "episteme", Kind: Exact},
	{Pattern: "dóksa", Replacement: "doxa", Kind: Exact},
	{Pattern: "alétheia", Replacement: "aletheia", Kind: Exact},
	{Pattern: "frônesis", Replacement: "phronesis", Kind: Exact},

	// Speech-to-text hallucination endings the local models produce.
	{Pattern: "hamartianeamente", Replacement: "hamartiano", Kind: Exact},
	{Pattern: "justanous", Replacement: "justamente", Kind: Exact},
	{Pattern: "evidentenous", Replacement: "evidentemente", Kind: Exact},
	{Pattern: "precisanous", Replacement: "precisamente", Kind: Exact},
	{Pattern: "historicanous", Replacement: "historicamente", Kind: Exact},
	{Pattern: "exatanous", Replacement: "exatamente", Kind: Exact},

	// Common verb misspellings seen in lecture transcripts.
	{Pattern: "ofereciram", Replacement: "ofereceram", Kind: Exact},
	{Pattern: "ofereseu", Replacement: "ofereceu", Kind: Exact},

	// Canonical terms for the phonetic fuzzy matcher.
	{Pattern: "sócrates", Replacement: "sócrates", Kind: Phonetic},
	{Pattern: "platão", Replacement: "platão", Kind: Phonetic},
	{Pattern: "aristóteles", Replacement: "aristóteles", Kind: Phonetic},
	{Pattern: "heráclito", Replacement: "heráclito", Kind: Phonetic},
	{Pattern: "parmênides", Replacement: "parmênides", Kind: Phonetic},
	{Pattern: "demócrito", Replacement: "demócrito", Kind: Phonetic},
	{Pattern: "pitágoras", Replacement: "pitágoras", Kind: Phonetic},
	{Pattern: "anaximandro", Replacement: "anaximandro", Kind: Phonetic},
	{Pattern: "agostinho", Replacement: "agostinho", Kind: Phonetic},
	{Pattern: "tomás de aquino", Replacement: "Tomás de Aquino", Kind: Phonetic},
	{Pattern: "duns scotus", Replacement: "Duns Scotus", Kind: Phonetic},
	{Pattern: "boaventura", Replacement: "boaventura", Kind: Phonetic},
	{Pattern: "alberto magno", Replacement: "Alberto Magno", Kind: Phonetic},
	{Pattern: "guilherme de ockham", Replacement: "Guilherme de Ockham", Kind: Phonetic},
	{Pattern: "mestre eckhart", Replacement: "Mestre Eckhart", Kind: Phonetic},
	{Pattern: "averróis", Replacement: "averróis", Kind: Phonetic},
	{Pattern: "avicena", Replacement: "avicena", Kind: Phonetic},
	{Pattern: "maimônides", Replacement: "maimônides", Kind: Phonetic},
	{Pattern: "descartes", Replacement: "descartes", Kind: Phonetic},
	{Pattern: "espinosa", Replacement: "espinosa", Kind: Phonetic},
	{Pattern: "leibniz", Replacement: "leibniz", Kind: Phonetic},
	{Pattern: "kant", Replacement: "kant", Kind: Phonetic},
	{Pattern: "hegel", Replacement: "hegel", Kind: Phonetic},
	{Pattern: "kierkegaard", Replacement: "kierkegaard", Kind: Phonetic},
	{Pattern: "schopenhauer", Replacement: "schopenhauer", Kind: Phonetic},
	{Pattern: "nietzsche", Replacement: "nietzsche", Kind: Phonetic},
	{Pattern: "husserl", Replacement: "husserl", Kind: Phonetic},
	{Pattern: "heidegger", Replacement: "heidegger", Kind: Phonetic},
	{Pattern: "wittgenstein", Replacement: "wittgenstein", Kind: Phonetic},
	{Pattern: "olavo de carvalho", Replacement: "Olavo de Carvalho", Kind: Phonetic},
	{Pattern: "mário ferreira dos santos", Replacement: "Mário Ferreira dos Santos", Kind: Phonetic},
	{Pattern: "escolástica", Replacement: "escolástica", Kind: Phonetic},
	{Pattern: "metafísica", Replacement: "metafísica", Kind: Phonetic},
	{Pattern: "ontologia", Replacement: "ontologia", Kind: Phonetic},
	{Pattern: "epistemologia", Replacement: "epistemologia", Kind: Phonetic},
	{Pattern: "fenomenologia", Replacement: "fenomenologia", Kind: Phonetic},
	{Pattern: "hermenêutica", Replacement: "hermenêutica", Kind: Phonetic},
	{Pattern: "silogismo", Replacement: "silogismo", Kind: Phonetic},
	{Pattern: "substância", Replacement: "substância", Kind: Phonetic},
	{Pattern: "transcendência", Replacement: "transcendência", Kind: Phonetic},
	{Pattern: "hilemorfismo", Replacement: "hilemorfismo", Kind: Phonetic},
	{Pattern: "nominalismo", Replacement: "nominalismo", Kind: Phonetic},
	{Pattern: "neotomismo", Replacement: "neotomismo", Kind: Phonetic},
	{Pattern: "eudaimonia", Replacement: "eudaimonia", Kind: Phonetic},
	{Pattern: "entelechia", Replacement: "entelechia", Kind: Phonetic},
}
