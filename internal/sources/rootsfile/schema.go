package rootsfile

// Entry is one storage root declaration in storages.yaml.
type Entry struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Current bool   `yaml:"current"`
	Default bool   `yaml:"default"`
}

// File is the root structure of storages.yaml:
//
//	storages:
//	  - name: personal
//	    path: /data/bookmarks/personal
//	    current: true
//	    default: true
type File struct {
	Storages []Entry `yaml:"storages"`
}
