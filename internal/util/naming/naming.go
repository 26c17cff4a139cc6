package naming

import "path"

// BootVolumeSuffix is appended to the instance name to name its boot volume.
const BootVolumeSuffix = "_boot"

// BootVolume returns the boot volume name of an instance.
func BootVolume(instance string) string {
	return instance + BootVolumeSuffix
}

// ArchiveObject returns the object key of an archived task record.
func ArchiveObject(prefix, taskID string) string {
	return path.Join(prefix, taskID+".json")
}
