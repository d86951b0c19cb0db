package screen

// Messages are the user-facing texts of the screens of one entity.
type Messages struct {
	SuccessTitle string
	ErrorTitle   string

	LoadFailed    string
	RefreshFailed string
	Created       string
	CreateFailed  string
	Updated       string
	UpdateFailed  string
	Deleted       string
	DeleteFailed  string

	ConfirmDeleteTitle string
	ConfirmDelete      string
}

var (
	StudentMessages = Messages{
		SuccessTitle:       "Succès",
		ErrorTitle:         "Erreur",
		LoadFailed:         "Échec du chargement des élèves",
		RefreshFailed:      "Échec du rafraîchissement des données",
		Created:            "Élève créé avec succès",
		CreateFailed:       "Échec de la création de l'élève",
		Updated:            "Élève mis à jour avec succès",
		UpdateFailed:       "Échec de la mise à jour de l'élève",
		Deleted:            "Élève supprimé avec succès",
		DeleteFailed:       "Échec de la suppression de l'élève",
		ConfirmDeleteTitle: "Supprimer l'élève",
		ConfirmDelete:      "Voulez-vous vraiment supprimer cet élève ?",
	}

	SubjectMessages = Messages{
		SuccessTitle:       "Succès",
		ErrorTitle:         "Erreur",
		LoadFailed:         "Impossible de charger les matières",
		RefreshFailed:      "Échec du rafraîchissement des données",
		Created:            "Matière créée avec succès",
		CreateFailed:       "Échec de la création de la matière",
		Updated:            "Mise à jour réussie",
		UpdateFailed:       "Échec de la mise à jour",
		Deleted:            "Matière supprimée",
		DeleteFailed:       "Suppression échouée",
		ConfirmDeleteTitle: "Supprimer la matière",
		ConfirmDelete:      "Voulez-vous vraiment supprimer cette matière ? Les examens et notes associés seront aussi supprimés.",
	}

	ExamMessages = Messages{
		SuccessTitle:       "Succès",
		ErrorTitle:         "Erreur",
		LoadFailed:         "Échec du chargement des examens",
		RefreshFailed:      "Échec du rafraîchissement des données",
		Created:            "Examen créé avec succès",
		CreateFailed:       "Échec de la création",
		Updated:            "Examen mis à jour avec succès",
		UpdateFailed:       "Échec de la mise à jour de l'examen",
		Deleted:            "Examen supprimé avec succès",
		DeleteFailed:       "Échec de la suppression de l'examen",
		ConfirmDeleteTitle: "Supprimer l'examen",
		ConfirmDelete:      "Voulez-vous vraiment supprimer cet examen ? Toutes les notes associées seront aussi supprimées.",
	}

	GradeMessages = Messages{
		SuccessTitle:       "Succès",
		ErrorTitle:         "Erreur",
		LoadFailed:         "Échec du chargement des notes",
		RefreshFailed:      "Échec du rafraîchissement des données",
		Created:            "Note créée avec succès",
		CreateFailed:       "Échec de la création de la note",
		Updated:            "Note mise à jour avec succès",
		UpdateFailed:       "Échec de la mise à jour de la note",
		Deleted:            "Note supprimée avec succès",
		DeleteFailed:       "Échec de la suppression de la note",
		ConfirmDeleteTitle: "Supprimer la note",
		ConfirmDelete:      "Voulez-vous vraiment supprimer cette note ?",
	}
)
