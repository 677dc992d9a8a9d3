package features

// PackageEntry is the classification of one metadata packages entry:
// either a declared feature or a literal package name. Exactly one of
// Feature/Direct is meaningful, selected by IsFeature.
type PackageEntry struct {
	IsFeature bool
	Feature   Name
	Direct    string
}

// Classify resolves a metadata packages entry against the feature
// enumeration. Membership wins; anything unknown is treated as a
// direct package name.
func Classify(entry string) PackageEntry {
	id := Name(entry)
	if IsKnown(id) {
		return PackageEntry{IsFeature: true, Feature: id}
	}
	return PackageEntry{Direct: entry}
}

// ClassifyAll splits a metadata packages list into feature identifiers
// and direct package names, preserving order within each group.
func ClassifyAll(entries []string) (features []Name, direct []string) {
	for _, entry := range entries {
		classified := Classify(entry)
		if classified.IsFeature {
			features = append(features, classified.Feature)
		} else {
			direct = append(direct, classified.Direct)
		}
	}
	return features, direct
}
