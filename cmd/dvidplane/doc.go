/*
dvidplane stores 5d (X, Y, Z, channel, time) pixel sets in an embedded badger database
and extracts 2d planes from them for viewers that need XY, XZ, or ZY slices.

In the following documentation, the type of brackets designate
<required parameter> and [optional parameter].

	dvidplane import [--name <name>] [--stats] <file.dcm>

Reads a DICOM file, stores its pixels as a new pixel set, and prints the new id.  With
--stats, per-channel minimum and maximum intensities are computed from the pixels
instead of the values the file declares.

	dvidplane list

Lists stored pixel sets with their ids, names, and dimensions.

	dvidplane extract [--shape xy|xz|zy] [--index N] [-c channel] [-t time] [--json] <id>

Prints one plane.  The index is the fixed coordinate of the plane: z for XY, y for XZ,
and x for ZY.

	dvidplane defaults <id> [id...]

Prints rendering defaults (quantum, channel bindings, default z and t, color model)
as JSON.

	dvidplane stats [--update] <id>

Computes per-channel statistics, optionally saving the minimum and maximum with the
pixel set so later rendering defaults use them.

	dvidplane delete <id> [id...]

Removes pixel sets and all their planes.

Every command accepts --config to name a TOML or YAML configuration file (see package
server), --store to override the database directory, --byteorder to set the byte order
assumed for pixel sets that don't declare one, and -v for debug logging.  Flags can also
be given through DVIDPLANE_* environment variables, e.g., DVIDPLANE_STORE.
*/
package main
