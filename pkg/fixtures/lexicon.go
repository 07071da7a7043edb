package fixtures

// Words are lower-case ASCII with no separators so they can be joined into
// names, paths and hostnames as-is.
var lexicon = []string{
	"abacus", "acorn", "admiral", "aerial", "agile", "alpine", "amber", "anchor",
	"apex", "arcade", "arrow", "aspen", "atlas", "aurora", "avenue", "badge",
	"bamboo", "banner", "basil", "beacon", "birch", "bison", "blaze", "bolt",
	"boulder", "bramble", "breeze", "bridge", "bronze", "buffer", "cable", "cactus",
	"canvas", "canyon", "carbon", "cargo", "cedar", "chalk", "charter", "cinder",
	"circuit", "citrus", "cobalt", "comet", "compass", "coral", "cosmos", "cotton",
	"crane", "crystal", "dagger", "delta", "desert", "dolphin", "dragon", "drift",
	"dune", "eagle", "echo", "ember", "engine", "falcon", "fathom", "fern",
	"firefly", "fjord", "flint", "forge", "fossil", "fox", "galaxy", "garnet",
	"gazelle", "glacier", "granite", "gravity", "harbor", "hazel", "helix", "heron",
	"horizon", "hydra", "indigo", "iris", "island", "ivory", "jade", "jaguar",
	"jasper", "juniper", "kernel", "kestrel", "kiwi", "lagoon", "lantern", "lava",
	"ledger", "lemon", "lichen", "lotus", "lunar", "magnet", "mango", "maple",
	"marble", "meadow", "mercury", "meteor", "mint", "monsoon", "mosaic", "nebula",
	"nectar", "nickel", "nimbus", "north", "oasis", "obsidian", "ocean", "olive",
	"onyx", "orbit", "orchid", "otter", "panda", "paper", "pebble", "pepper",
	"phoenix", "pilot", "pine", "pixel", "planet", "plasma", "polar", "pollen",
	"prairie", "prism", "pulsar", "quartz", "quasar", "radar", "raven", "reef",
	"ripple", "river", "rocket", "ruby", "saffron", "sage", "salmon", "sapphire",
	"saturn", "sequoia", "shadow", "sierra", "signal", "silver", "socket", "solar",
	"spark", "sparrow", "spruce", "summit", "sunset", "tango", "thistle", "thunder",
	"tiger", "timber", "topaz", "tundra", "turbine", "umber", "valley", "velvet",
	"vertex", "violet", "vortex", "walnut", "willow", "wizard", "yonder", "zephyr",
}

var lorem = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore", "et",
	"dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam", "quis",
	"nostrud", "exercitation", "ullamco", "laboris", "nisi", "aliquip", "ex", "ea",
	"commodo", "consequat", "duis", "aute", "irure", "in", "reprehenderit", "voluptate",
	"velit", "esse", "cillum", "fugiat", "nulla", "pariatur", "excepteur", "sint",
	"occaecat", "cupidatat", "non", "proident", "sunt", "culpa", "qui", "officia",
	"deserunt", "mollit", "anim", "id", "est", "laborum",
}

var topLevelDomains = []string{"com", "net", "org", "io", "info", "biz"}
