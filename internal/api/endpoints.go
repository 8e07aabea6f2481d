package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"simple-calculator/internal/auth"
	"simple-calculator/internal/calc"
	"simple-calculator/internal/db"
	"simple-calculator/internal/logger"
)

type CalculateRequest struct {
	Expression string `json:"expression"`
}

// NewRouter собирает HTTP маршруты сервера калькулятора
func NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/v1/register", auth.Register).Methods("POST")
	r.HandleFunc("/api/v1/login", auth.Login).Methods("POST")

	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(auth.AuthMiddleware)
	protected.HandleFunc("/calculate", HandleCalculate).Methods("POST")
	protected.HandleFunc("/calculations", HandleGetCalculations).Methods("GET")
	protected.HandleFunc("/calculations/{id}", HandleGetCalculationByID).Methods("GET")

	return r
}

// HandleCalculate вычисляет выражение и сохраняет его в истории пользователя.
// Ошибки разбора тоже сохраняются и возвращаются со статусом 422.
func HandleCalculate(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireAuth(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var request CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	logger.LogINFO(fmt.Sprintf("Received calculate request: %q", request.Expression))

	status := http.StatusCreated
	var calculation *db.Calculation

	result, calcErr := calc.Calculate(request.Expression)
	if calcErr != nil {
		status = http.StatusUnprocessableEntity
		calculation, err = db.CreateFailedCalculation(userID, request.Expression, calcErr.Error())
	} else {
		calculation, err = db.CreateCalculation(userID, request.Expression, calc.FormatResult(result))
	}

	if err != nil {
		logger.LogERROR(fmt.Sprintf("Failed to save calculation: %v", err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, status, calculation)
}

// HandleGetCalculations возвращает историю вычислений пользователя
func HandleGetCalculations(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireAuth(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	calculations, err := db.GetUserCalculations(userID)
	if err != nil {
		logger.LogERROR(fmt.Sprintf("Failed to get calculations: %v", err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if calculations == nil {
		calculations = []*db.Calculation{}
	}

	writeJSON(w, http.StatusOK, calculations)
}

// HandleGetCalculationByID возвращает одно вычисление пользователя
func HandleGetCalculationByID(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireAuth(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	calculation, err := db.GetUserCalculationByID(userID, id)
	if err != nil {
		if errors.Is(err, db.ErrCalculationNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, calculation)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.LogERROR(fmt.Sprintf("Failed to encode response: %v", err))
	}
}
