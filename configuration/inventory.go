package configuration

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"awsinventory/errors"
)

// InventoryFile is the HCL description of the collection targets, e.g.
//
//	regions          = ["us-east-2", "us-west-2"]
//	discover_regions = false
type InventoryFile struct {
	Regions         []string `hcl:"regions,optional"`
	DiscoverRegions bool     `hcl:"discover_regions,optional"`
}

// LoadInventoryFile decodes an HCL inventory file from the given path.
func LoadInventoryFile(path string) (*InventoryFile, error) {
	var inventory InventoryFile
	if err := hclsimple.DecodeFile(path, nil, &inventory); err != nil {
		return nil, errors.New(errors.ErrConfigParse, "error decoding inventory file",
			map[string]interface{}{
				"config_file": path,
			}, err)
	}
	return &inventory, nil
}
