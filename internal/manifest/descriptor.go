package manifest

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// DescriptorFile is the package descriptor file name.
const DescriptorFile = "package.json"

// metaKey is the package.json key holding scaffold metadata.
const metaKey = "webStarter"

// ReadPackageDescriptor reads a package.json. A malformed file is an error;
// a missing "webStarter" block is not.
func ReadPackageDescriptor(path string) (*PackageDescriptor, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePackageDescriptor(data, path)
}

// ParsePackageDescriptor parses package.json content. path is only used in
// error messages.
func ParsePackageDescriptor(data []byte, path string) (*PackageDescriptor, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing package descriptor %s: invalid JSON", path)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("parsing package descriptor %s: top level is not an object", path)
	}

	pd := &PackageDescriptor{
		Name:    doc.Get("name").String(),
		Version: doc.Get("version").String(),
	}

	block := doc.Get(metaKey)
	if block.Exists() {
		if !block.IsObject() {
			return nil, fmt.Errorf("parsing package descriptor %s: %q must be an object", path, metaKey)
		}
		pd.Meta = &ScaffoldMeta{
			Category: block.Get("category").String(),
			Name:     block.Get("name").String(),
			Label:    block.Get("label").String(),
			Value:    block.Get("value").String(),
		}
	}

	return pd, nil
}
