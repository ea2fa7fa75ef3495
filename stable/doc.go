// Package stable provides the persisted mirror of the value tree.
//
// A stable Value is a plain, exported, self-contained struct that holds no pointers
// into live working state. Stabilize converts a working value.Value into its stable
// form before it is written to durable storage, and Destabilize turns a stable value
// read back after a restart into a working value again. The two functions are
// mutually inverse: for every value, Destabilize(Stabilize(v)) is equal to v and
// keeps the frozen/thawed tag of every collection.
//
// Both directions fail loudly with errs.ErrUnmirroredKind when they meet a kind that
// has no correspondent on the other side; they never drop data silently.
//
// Marshal and Unmarshal encode stable values with MessagePack.
package stable
