// Package interchange lists the fields every reconstruction workflow
// receives on its input node. Preprocessing outputs and anatomical
// derivatives are passed under these names between workflows.
package interchange

import "slices"

// qsiprepOutputNames are the preprocessing outputs handed to reconstruction.
var qsiprepOutputNames = []string{
	"dwi_file",
	"bval_file",
	"bvec_file",
	"b_file",
	"btable_file",
	"confounds_file",
	"dwi_mask",
	"dwi_ref",
	"t1_brain_mask",
	"t1_preproc",
	"t1_csf_probseg",
	"t1_gm_probseg",
	"t1_wm_probseg",
	"t1_seg",
	"t1_aseg",
	"t1_aparc",
	"t1_2_mni_forward_transform",
	"t1_2_mni_reverse_transform",
	"template_image",
	"atlas_configs",
	"mapping_metadata",
	"qc_file",
}

// anatomicalInputNames describe which anatomical derivatives are available.
var anatomicalInputNames = []string{
	"has_qsiprep_5tt_hsvs",
	"has_freesurfer_5tt_hsvs",
	"has_freesurfer",
	"qsiprep_5tt_hsvs",
	"fs_5tt_hsvs",
	"freesurfer_subjects_dir",
	"subject_id",
}

// ReconWorkflowInputFields returns the input node fields shared by all
// reconstruction workflows. The returned slice is a fresh copy.
func ReconWorkflowInputFields() []string {
	return slices.Concat(qsiprepOutputNames, anatomicalInputNames)
}

// AnatomicalInputFields returns the anatomical availability fields only.
func AnatomicalInputFields() []string {
	return slices.Clone(anatomicalInputNames)
}

// AnatomicalData records which anatomical derivatives were found for a
// subject, keyed by the names in AnatomicalInputFields.
type AnatomicalData map[string]bool

// Has reports whether the named derivative is available.
func (a AnatomicalData) Has(name string) bool {
	return a[name]
}
