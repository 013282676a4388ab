package api

// User-facing notification texts. The UI is single-locale; raw storage
// errors never surface here.
const (
	msgCreateOK      = "L'article a bien été créé"
	msgCreatePartial = "L'article a été créé mais son référencement n'a pas pu être enregistré"
	msgUpdateOK      = "L'article a bien été mis à jour"
	msgDeleteOK      = "L'article a bien été supprimé"
	msgDeleteFailed  = "La suppression de l'article a échoué"

	msgValidatedOK      = "L'article a bien été validé"
	msgUnvalidatedOK    = "La validation de l'article a été retirée"
	msgValidatePartial  = "L'article a été validé mais son référencement n'a pas été synchronisé"
	msgShippedOK        = "L'article est en ligne"
	msgUnshippedOK      = "L'article a été retiré du site"
	msgShipUnvalidated  = "L'article doit être validé avant d'être mis en ligne"
	msgImmutableField   = "Le titre et le slug d'un article ne peuvent pas être modifiés"
	msgArticleNotFound  = "L'article est introuvable"
	msgInvalidFields    = "Certains champs sont invalides"
	msgInvalidPayload   = "La demande est mal formée"
	msgUnknownAction    = "Action non reconnue"
	msgForbidden        = "Vous n'avez pas les droits nécessaires"
	msgStorageFailure   = "Une erreur est survenue, merci de réessayer"
	msgUserCreateOK     = "Le compte a bien été créé"
	msgUserUpdateOK     = "Le compte a bien été mis à jour"
	msgUserDeleteOK     = "Le compte a bien été supprimé"
	msgUserDeleteFailed = "La suppression du compte a échoué"
)
