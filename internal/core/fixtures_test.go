package core

const lodashIntegrity = "sha512-v2kDEe57lecTulaDIuNTPy3Ry4gLGJ6Z1O3vE1krgXZNrsQ+LFTGHVxVjcXPs17LhbZVGedAJv8XZ1tvj5FvSg=="

const lodashLockfile = `{
  "name": "sandbox-project",
  "version": "1.0.0",
  "lockfileVersion": 3,
  "requires": true,
  "packages": {
    "": {
      "name": "sandbox-project",
      "version": "1.0.0",
      "dependencies": {
        "lodash": "^4.17.21"
      }
    },
    "node_modules/lodash": {
      "version": "4.17.21",
      "resolved": "https://registry.npmjs.org/lodash/-/lodash-4.17.21.tgz",
      "integrity": "` + lodashIntegrity + `",
      "license": "MIT"
    }
  }
}
`

// treeLockfile has express-like nesting: a hoisted dep, a nested copy that
// shadows it, an unpinned leaf and a missing optional dep.
const treeLockfile = `{
  "name": "sandbox-project",
  "lockfileVersion": 3,
  "packages": {
    "": {"name": "sandbox-project", "dependencies": {"app": "1.0.0"}},
    "node_modules/app": {
      "version": "1.0.0",
      "integrity": "sha256-AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=",
      "dependencies": {"debug": "^2.0.0", "ms": "^2.1.0"},
      "optionalDependencies": {"fsevents": "^2.0.0"}
    },
    "node_modules/debug": {
      "version": "2.6.9",
      "integrity": "sha256-AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=",
      "dependencies": {"ms": "2.0.0"}
    },
    "node_modules/debug/node_modules/ms": {
      "version": "2.0.0"
    },
    "node_modules/ms": {
      "version": "2.1.3",
      "integrity": "sha256-AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="
    }
  }
}
`
