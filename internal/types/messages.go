package types

// User-facing message catalogue. These strings are part of the API contract
// and must stay byte-for-byte stable.
const (
	ErrMsgNoAvailableBalance           = "No tiene saldo disponible para vincularse al fondo"
	ErrMsgNoMinimumAmount              = "El fondo no tiene un monto mínimo de inversión"
	ErrMsgAlreadySubscribed            = "El usuario ya está suscrito a este fondo"
	ErrMsgUserNotFoundToSubscribe      = "No existe el usuario para suscribirse al fondo"
	ErrMsgFundNotFoundToSubscribe      = "No existe el fondo para realizar la suscripción"
	ErrMsgUserNotFound                 = "El usuario no existe"
	ErrMsgSubscriptionNotFound         = "Subscription does not exist"
	ErrMsgSubscriptionAlreadyCancelled = "La suscripción ya está cancelada"
	ErrMsgFundNotFound                 = "Fund not found"
	ErrMsgDBConnection                 = "Error de conexión a la base de datos"
)

const (
	MsgSubscriptionCreated   = "Suscripción realizada con éxito"
	MsgSubscriptionCancelled = "Suscripción cancelada con éxito"
	MsgFundCreated           = "Fondo creado con éxito"
	MsgUserCreated           = "User created successfully"
	MsgWelcome               = "Bienvenido a la API de Fondos de Inversión"
)
