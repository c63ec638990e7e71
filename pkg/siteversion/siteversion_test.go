package siteversion

import (
	"testing"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/filesystem"
	"github.com/arthur-debert/relink/pkg/testutil"
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const joomla15 = `<?php
defined('JPATH_BASE') or die();
class JVersion
{
	/** @var string Product */
	var $PRODUCT 	= 'Joomla!';
	/** @var int Main Release Level */
	var $RELEASE 	= '1.5';
	/** @var string Development Status */
	var $DEV_STATUS = 'Stable';
	/** @var int Sub Release Level */
	var $DEV_LEVEL 	= '26';
}
`

const joomla25 = `<?php
final class JVersion
{
	public $PRODUCT = 'Joomla!';
	public $RELEASE = '2.5';
	public $DEV_LEVEL = '28';
	public $DEV_STATUS = 'Stable';
}
`

const joomla36 = `<?php
final class JVersion
{
	const PRODUCT = 'Joomla!';
	const RELEASE = '3.6';
	const DEV_LEVEL = '5';
}
`

const joomla4 = `<?php
namespace Joomla\CMS;
final class Version
{
	const PRODUCT = 'Joomla!';
	const MAJOR_VERSION = 4;
	const MINOR_VERSION = 2;
	const PATCH_VERSION = 9;
	const EXTRA_VERSION = '';
}
`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"legacy vars", joomla15, "1.5.26"},
		{"public properties", joomla25, "2.5.28"},
		{"class constants", joomla36, "3.6.5"},
		{"split constants", joomla4, "4.2.9"},
		{"release only", "<?php $RELEASE = '1.0';", "1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_NoVersion(t *testing.T) {
	_, err := Parse([]byte("<?php echo 'hello';"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrVersionNotFound))
}

var versionFiles = []string{
	"libraries/joomla/version.php",
	"includes/version.php",
	"libraries/cms/version/version.php",
	"libraries/src/Version.php",
}

func TestDetect(t *testing.T) {
	site := t.TempDir()
	testutil.CreateFile(t, site, "libraries/cms/version/version.php", joomla25)
	testutil.CreateFile(t, site, "libraries/src/Version.php", joomla4)

	d := NewDetector(filesystem.NewOS(types.PlatformPOSIX), versionFiles, "1.5")
	res := d.Detect(site)
	assert.Equal(t, "2.5.28", res.Version)
	assert.True(t, res.Detected())
}

func TestDetect_EarliestPathFirst(t *testing.T) {
	site := t.TempDir()
	testutil.CreateFile(t, site, "libraries/joomla/version.php", joomla15)
	testutil.CreateFile(t, site, "libraries/cms/version/version.php", joomla25)

	res := NewDetector(filesystem.NewOS(types.PlatformPOSIX), versionFiles, "1.5").Detect(site)
	assert.Equal(t, "1.5.26", res.Version)
}

func TestDetect_SkipsFilesWithoutVersion(t *testing.T) {
	site := t.TempDir()
	testutil.CreateFile(t, site, "libraries/joomla/version.php", "<?php // moved")
	testutil.CreateFile(t, site, "libraries/src/Version.php", joomla4)

	res := NewDetector(filesystem.NewOS(types.PlatformPOSIX), versionFiles, "1.5").Detect(site)
	assert.Equal(t, "4.2.9", res.Version)
}

func TestDetect_Fallback(t *testing.T) {
	res := NewDetector(filesystem.NewOS(types.PlatformPOSIX), versionFiles, "1.5").Detect(t.TempDir())
	assert.Equal(t, "1.5", res.Version)
	assert.False(t, res.Detected())
}

func TestAtLeast(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"1.5", false},
		{"1.5.26", false},
		{"1.6", true},
		{"1.6.0", true},
		{"2.5.0", true},
		{"3.2.1", true},
		{"3.10", true},
		{"4.2.9", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got, err := AtLeast(tt.version, "1.6.0")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAtLeast_Invalid(t *testing.T) {
	_, err := AtLeast("unknown", "1.6.0")
	assert.True(t, errors.IsErrorCode(err, errors.ErrVersionInvalid))

	_, err = AtLeast("1.5", "soon")
	assert.True(t, errors.IsErrorCode(err, errors.ErrVersionInvalid))
}
